package service

import (
	"context"
	"fmt"

	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/repository"
)

var (
	ErrFilmNotFound = repository.ErrFilmNotFound
	ErrFilmExists   = repository.ErrFilmExists
)

type FilmRepository interface {
	Create(ctx context.Context, film domain.Film) (domain.Film, error)
	FindByID(ctx context.Context, id uint) (domain.Film, error)
	FindAll(ctx context.Context) ([]domain.Film, error)
}

type FilmService struct {
	repo FilmRepository
}

func NewFilmService(repo FilmRepository) *FilmService {
	return &FilmService{
		repo: repo,
	}
}

func (s *FilmService) CreateFilm(ctx context.Context, film domain.Film) (domain.Film, error) {
	created, err := s.repo.Create(ctx, film)
	if err != nil {
		return domain.Film{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FilmService) GetFilm(ctx context.Context, id uint) (domain.Film, error) {
	film, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Film{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return film, nil
}

// ListFilms returns all films ordered by title, each annotated with the
// span of scheduled seances when any exist.
func (s *FilmService) ListFilms(ctx context.Context) ([]domain.Film, error) {
	films, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return films, nil
}
