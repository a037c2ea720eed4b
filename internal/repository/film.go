package repository

import (
	"context"
	"fmt"

	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/repository/dao"
)

var (
	ErrFilmNotFound = dao.ErrFilmNotFound
	ErrFilmExists   = dao.ErrFilmExists
)

type FilmDAO interface {
	Insert(ctx context.Context, film dao.Film) (dao.Film, error)
	FindByID(ctx context.Context, id uint) (dao.Film, error)
	FindAll(ctx context.Context) ([]dao.Film, error)
	SeanceSpans(ctx context.Context) (map[uint]dao.SeanceSpan, error)
}

type FilmRepository struct {
	dao FilmDAO
}

func NewFilmRepository(dao FilmDAO) *FilmRepository {
	return &FilmRepository{
		dao: dao,
	}
}

func (r *FilmRepository) Create(ctx context.Context, film domain.Film) (domain.Film, error) {
	created, err := r.dao.Insert(ctx, dao.Film{
		Title:       film.Title,
		Description: film.Description,
		ReleaseDate: film.ReleaseDate,
		DurationMin: film.DurationMin,
		ImageURL:    film.ImageURL,
		TitleImgURL: film.TitleImgURL,
	})
	if err != nil {
		return domain.Film{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *FilmRepository) FindByID(ctx context.Context, id uint) (domain.Film, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Film{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// FindAll lists films ordered by title, each annotated with the span of
// its scheduled seances when it has any.
func (r *FilmRepository) FindAll(ctx context.Context) ([]domain.Film, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	spans, err := r.dao.SeanceSpans(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SeanceSpans -> %w", err)
	}

	films := make([]domain.Film, len(found))
	for i, f := range found {
		film := r.daoToDomain(f)
		if span, ok := spans[f.ID]; ok {
			earliest, latest := span.Earliest, span.Latest
			film.EarliestSeance = &earliest
			film.LatestSeance = &latest
		}
		films[i] = film
	}

	return films, nil
}

func (r *FilmRepository) daoToDomain(f dao.Film) domain.Film {
	return domain.Film{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate,
		DurationMin: f.DurationMin,
		ImageURL:    f.ImageURL,
		TitleImgURL: f.TitleImgURL,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
