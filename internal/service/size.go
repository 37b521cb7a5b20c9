package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wali-jeweller/storefront/internal/domain"
)

// SizeService implements the business logic for ring and bracelet sizes.
type SizeService struct {
	repo   domain.SizeRepository
	logger *slog.Logger
}

// NewSizeService creates a new size service.
func NewSizeService(repo domain.SizeRepository, logger *slog.Logger) *SizeService {
	return &SizeService{
		repo:   repo,
		logger: logger,
	}
}

// CreateSize creates a new size option.
func (s *SizeService) CreateSize(ctx context.Context, input *domain.CreateSizeInput) (*domain.Size, error) {
	now := time.Now().UTC()
	size := &domain.Size{
		ID:        uuid.New().String(),
		Label:     input.Label,
		SortOrder: input.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, size); err != nil {
		return nil, fmt.Errorf("create size: %w", err)
	}

	s.logger.InfoContext(ctx, "size created",
		slog.String("size_id", size.ID),
		slog.String("label", size.Label),
	)

	return size, nil
}

// GetSize retrieves a size by its ID.
func (s *SizeService) GetSize(ctx context.Context, id string) (*domain.Size, error) {
	size, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get size by id: %w", err)
	}
	return size, nil
}

// ListSizes returns all sizes ordered by sort order.
func (s *SizeService) ListSizes(ctx context.Context) ([]domain.Size, error) {
	sizes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	return sizes, nil
}

// UpdateSize applies partial updates to an existing size.
func (s *SizeService) UpdateSize(ctx context.Context, id string, input *domain.UpdateSizeInput) (*domain.Size, error) {
	size, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get size for update: %w", err)
	}

	if input.Label != nil {
		size.Label = *input.Label
	}
	if input.SortOrder != nil {
		size.SortOrder = *input.SortOrder
	}
	size.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, size); err != nil {
		return nil, fmt.Errorf("update size: %w", err)
	}

	s.logger.InfoContext(ctx, "size updated",
		slog.String("size_id", size.ID),
		slog.String("label", size.Label),
	)

	return size, nil
}

// DeleteSize removes a size by its ID.
func (s *SizeService) DeleteSize(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete size: %w", err)
	}

	s.logger.InfoContext(ctx, "size deleted",
		slog.String("size_id", id),
	)

	return nil
}
