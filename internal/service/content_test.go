package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wali-jeweller/storefront/internal/domain"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

type mockPageRepository struct {
	mock.Mock
}

func (m *mockPageRepository) Create(ctx context.Context, page *domain.ContentPage) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *mockPageRepository) GetByID(ctx context.Context, id string) (*domain.ContentPage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentPage), args.Error(1)
}

func (m *mockPageRepository) GetBySlug(ctx context.Context, slug string) (*domain.ContentPage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentPage), args.Error(1)
}

func (m *mockPageRepository) Update(ctx context.Context, page *domain.ContentPage) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *mockPageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPageRepository) ListPublished(ctx context.Context) ([]domain.ContentPage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContentPage), args.Error(1)
}

func (m *mockPageRepository) ListAll(ctx context.Context) ([]domain.ContentPage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContentPage), args.Error(1)
}

func (m *mockPageRepository) AddSection(ctx context.Context, section *domain.PageSection) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *mockPageRepository) DeleteSection(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreatePage(t *testing.T) {
	repo := new(mockPageRepository)
	svc := NewContentService(repo, newTestLogger())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.ContentPage) bool {
		return p.Title == "Care Guide" && p.Slug == "care-guide" && !p.Published
	})).Return(nil)

	page, err := svc.CreatePage(context.Background(), &domain.CreatePageInput{Title: "Care Guide"})
	require.NoError(t, err)
	assert.Equal(t, "care-guide", page.Slug)
	repo.AssertExpectations(t)
}

func TestGetPublishedPage_HidesUnpublished(t *testing.T) {
	repo := new(mockPageRepository)
	svc := NewContentService(repo, newTestLogger())

	repo.On("GetBySlug", mock.Anything, "draft-post").
		Return(&domain.ContentPage{ID: "pg-1", Slug: "draft-post", Published: false}, nil)

	_, err := svc.GetPublishedPage(context.Background(), "draft-post")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetPublishedPage(t *testing.T) {
	repo := new(mockPageRepository)
	svc := NewContentService(repo, newTestLogger())

	repo.On("GetBySlug", mock.Anything, "about").
		Return(&domain.ContentPage{ID: "pg-1", Slug: "about", Published: true}, nil)

	page, err := svc.GetPublishedPage(context.Background(), "about")
	require.NoError(t, err)
	assert.True(t, page.Published)
}

func TestAddSection_RequiresPage(t *testing.T) {
	repo := new(mockPageRepository)
	svc := NewContentService(repo, newTestLogger())

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := svc.AddSection(context.Background(), "missing", &domain.CreateSectionInput{Body: "text"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "AddSection")
}

func TestUpdatePage_PublishToggle(t *testing.T) {
	repo := new(mockPageRepository)
	svc := NewContentService(repo, newTestLogger())

	published := true
	repo.On("GetByID", mock.Anything, "pg-1").
		Return(&domain.ContentPage{ID: "pg-1", Title: "About", Slug: "about"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.ContentPage) bool {
		return p.Published && p.Slug == "about"
	})).Return(nil)

	page, err := svc.UpdatePage(context.Background(), "pg-1", &domain.UpdatePageInput{Published: &published})
	require.NoError(t, err)
	assert.True(t, page.Published)
	repo.AssertExpectations(t)
}
