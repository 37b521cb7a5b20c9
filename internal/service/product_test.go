package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/internal/event"
	"github.com/wali-jeweller/storefront/internal/tablestate"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

// --- Mock Repositories ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) List(ctx context.Context, state tablestate.State) (*domain.ProductList, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductList), args.Error(1)
}

func (m *mockProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListRelated(ctx context.Context, productID string, threshold float64, limit int) ([]domain.RelatedProduct, error) {
	args := m.Called(ctx, productID, threshold, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RelatedProduct), args.Error(1)
}

func (m *mockProductRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	args := m.Called(ctx, id, embedding)
	return args.Error(0)
}

type mockImageRepository struct {
	mock.Mock
}

func (m *mockImageRepository) Create(ctx context.Context, image *domain.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *mockImageRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Image, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *mockImageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestProductService(repo *mockProductRepository, images *mockImageRepository) *ProductService {
	logger := newTestLogger()
	producer := event.NewProducer(nil, logger)
	return NewProductService(repo, images, producer, logger)
}

func strPtr(s string) *string {
	return &s
}

// --- Tests ---

func TestCreateProduct(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestProductService(repo, new(mockImageRepository))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Gold Vermeil Hoops" &&
			p.Slug == "gold-vermeil-hoops" &&
			p.Status == domain.ProductStatusDraft &&
			p.PriceCents == 45000 &&
			p.ID != ""
	})).Return(nil)

	product, err := svc.CreateProduct(context.Background(), &domain.CreateProductInput{
		Name:       "Gold Vermeil Hoops",
		PriceCents: 45000,
	})
	require.NoError(t, err)
	assert.Equal(t, "gold-vermeil-hoops", product.Slug)
	assert.Equal(t, domain.ProductStatusDraft, product.Status)
	repo.AssertExpectations(t)
}

func TestCreateProduct_UnsluggableName(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestProductService(repo, new(mockImageRepository))

	_, err := svc.CreateProduct(context.Background(), &domain.CreateProductInput{
		Name:       "!!!",
		PriceCents: 100,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestGetProduct_AttachesImages(t *testing.T) {
	repo := new(mockProductRepository)
	images := new(mockImageRepository)
	svc := newTestProductService(repo, images)

	repo.On("GetByID", mock.Anything, "p-1").Return(&domain.Product{ID: "p-1", Name: "Ring"}, nil)
	images.On("ListByProduct", mock.Anything, "p-1").Return([]domain.Image{{ID: "img-1", ProductID: "p-1"}}, nil)

	product, err := svc.GetProduct(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, product.Images, 1)
	assert.Equal(t, "img-1", product.Images[0].ID)
}

func TestGetProduct_ImageLoadFailureDegrades(t *testing.T) {
	repo := new(mockProductRepository)
	images := new(mockImageRepository)
	svc := newTestProductService(repo, images)

	repo.On("GetByID", mock.Anything, "p-1").Return(&domain.Product{ID: "p-1"}, nil)
	images.On("ListByProduct", mock.Anything, "p-1").Return(nil, assert.AnError)

	product, err := svc.GetProduct(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Empty(t, product.Images)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestProductService(repo, new(mockImageRepository))

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateProduct_RenameRegeneratesSlug(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestProductService(repo, new(mockImageRepository))

	existing := &domain.Product{ID: "p-1", Name: "Old Name", Slug: "old-name", Status: domain.ProductStatusActive}
	repo.On("GetByID", mock.Anything, "p-1").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Slug == "emeraude-ring"
	})).Return(nil)

	product, err := svc.UpdateProduct(context.Background(), "p-1", &domain.UpdateProductInput{
		Name: strPtr("Émeraude Ring"),
	})
	require.NoError(t, err)
	assert.Equal(t, "emeraude-ring", product.Slug)
	repo.AssertExpectations(t)
}

func TestListRelated_UsesConfiguredTuning(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestProductService(repo, new(mockImageRepository))
	svc.SetRelatedTuning(0.7, 4)

	repo.On("ListRelated", mock.Anything, "p-1", 0.7, 4).
		Return([]domain.RelatedProduct{{Similarity: 0.91}}, nil)

	related, err := svc.ListRelated(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.InDelta(t, 0.91, related[0].Similarity, 1e-9)
	repo.AssertExpectations(t)
}

func TestDeleteProduct(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestProductService(repo, new(mockImageRepository))

	repo.On("Delete", mock.Anything, "p-1").Return(nil)

	require.NoError(t, svc.DeleteProduct(context.Background(), "p-1"))
	repo.AssertExpectations(t)
}

func TestAddImage_RequiresProduct(t *testing.T) {
	repo := new(mockProductRepository)
	images := new(mockImageRepository)
	svc := newTestProductService(repo, images)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := svc.AddImage(context.Background(), "missing", "https://cdn.example.com/x.jpg", nil, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	images.AssertNotCalled(t, "Create")
}
