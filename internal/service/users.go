package service

import (
	"context"

	"github.com/toolhub/backoffice/internal/domain"
	"github.com/toolhub/backoffice/internal/repository"
)

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.Get(ctx, id)
}

// Create defaults new accounts to an active secretary. Duplicate emails come
// back as repository.ErrDuplicateEmail from the unique index.
func (s *UserService) Create(ctx context.Context, email, role string, active *bool) (*domain.User, error) {
	if email == "" {
		return nil, ErrMissingFields
	}

	userRole := domain.RoleSecretary
	if role != "" {
		userRole = domain.UserRole(role)
		if !userRole.Valid() {
			return nil, ErrInvalidRole
		}
	}

	isActive := true
	if active != nil {
		isActive = *active
	}

	user := &domain.User{
		Email:  email,
		Role:   userRole,
		Active: isActive,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id, email, role string, active *bool) (*domain.User, error) {
	if email == "" || role == "" {
		return nil, ErrMissingFields
	}

	userRole := domain.UserRole(role)
	if !userRole.Valid() {
		return nil, ErrInvalidRole
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	isActive := current.Active
	if active != nil {
		isActive = *active
	}

	return s.repo.Update(ctx, id, &domain.User{
		Email:  email,
		Role:   userRole,
		Active: isActive,
	})
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.Delete(ctx, id)
}
