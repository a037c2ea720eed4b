package service

import (
	"context"
	"fmt"

	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/repository"
)

var (
	ErrHallNotFound   = repository.ErrHallNotFound
	ErrHallNameExists = repository.ErrHallNameExists
)

type HallRepository interface {
	Create(ctx context.Context, hall domain.Hall) (domain.Hall, error)
	FindByID(ctx context.Context, id uint) (domain.Hall, error)
	FindAll(ctx context.Context) ([]domain.Hall, error)
	Update(ctx context.Context, hall domain.Hall) (domain.Hall, error)
}

type HallService struct {
	repo HallRepository
}

func NewHallService(repo HallRepository) *HallService {
	return &HallService{
		repo: repo,
	}
}

func (s *HallService) CreateHall(ctx context.Context, hall domain.Hall) (domain.Hall, error) {
	hall.IsEditable = true

	created, err := s.repo.Create(ctx, hall)
	if err != nil {
		return domain.Hall{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *HallService) GetHall(ctx context.Context, id uint) (domain.Hall, error) {
	hall, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Hall{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return hall, nil
}

func (s *HallService) ListHalls(ctx context.Context) ([]domain.Hall, error) {
	halls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return halls, nil
}

// UpdateHall renames or resizes a hall. Halls with sold tickets are frozen
// and the update is rejected with ErrHallNotEditable.
func (s *HallService) UpdateHall(ctx context.Context, hall domain.Hall) (domain.Hall, error) {
	updated, err := s.repo.Update(ctx, hall)
	if err != nil {
		return domain.Hall{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
