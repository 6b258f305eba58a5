package service

import (
	"context"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/idx"
)

// CategoryService manages the global achievement categories. Reads are
// open to any active user; writes are admin-only, enforced at the route.
type CategoryService struct {
	Store store.Store
}

type CategoryInput struct {
	Name        string
	Icon        string
	Color       string
	Description string
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (domain.Category, error) {
	if in.Name == "" {
		return domain.Category{}, ErrValidation
	}

	now := time.Now().UTC()
	c := domain.Category{
		ID:          idx.New().String(),
		Name:        in.Name,
		Icon:        in.Icon,
		Color:       in.Color,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Categories().Create(ctx, c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (domain.Category, error) {
	return s.Store.Categories().GetByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, limit, offset int) ([]domain.Category, error) {
	return s.Store.Categories().List(ctx, limit, offset)
}

func (s *CategoryService) Update(ctx context.Context, id string, upd domain.CategoryUpdate) (domain.Category, error) {
	if upd.Name != nil && *upd.Name == "" {
		return domain.Category{}, ErrValidation
	}
	if err := s.Store.Categories().Update(ctx, id, upd); err != nil {
		return domain.Category{}, err
	}
	return s.Store.Categories().GetByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.Store.Categories().Delete(ctx, id)
}
