package service

import (
	"context"
	"fmt"

	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/repository"
)

var ErrUserNotFound = repository.ErrUserNotFound

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	TotalSpent(ctx context.Context, id uint) (float64, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// Profile returns the user together with the total amount spent on tickets.
func (s *UserService) Profile(ctx context.Context, id uint) (domain.User, float64, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, 0, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	spent, err := s.repo.TotalSpent(ctx, id)
	if err != nil {
		return domain.User{}, 0, fmt.Errorf("s.repo.TotalSpent -> %w", err)
	}

	return user, spent, nil
}
