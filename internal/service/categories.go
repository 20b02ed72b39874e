package service

import (
	"context"

	"github.com/toolhub/backoffice/internal/domain"
	"github.com/toolhub/backoffice/internal/repository"
)

type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.Get(ctx, id)
}

// Create does not enforce name uniqueness; categories are free-text labels
// and the data layer never promised otherwise.
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, ErrMissingFields
	}

	category := &domain.Category{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	if name == "" {
		return nil, ErrMissingFields
	}
	return s.repo.Update(ctx, id, name)
}

func (s *CategoryService) Delete(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.Delete(ctx, id)
}
