package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/repository/dao"
)

var ErrSeanceNotFound = dao.ErrSeanceNotFound

// SeanceQuery mirrors dao.SeanceQuery at the domain boundary.
type SeanceQuery struct {
	HallID        *uint
	StartFrom     *time.Time
	StartTo       *time.Time
	TimeOfDayFrom *time.Time
}

type SeanceDAO interface {
	Insert(ctx context.Context, seance dao.Seance) (dao.Seance, error)
	InsertBatch(ctx context.Context, seances []dao.Seance) ([]dao.Seance, error)
	Update(ctx context.Context, seance dao.Seance, now time.Time) (dao.Seance, error)
	FindByID(ctx context.Context, id uint) (dao.Seance, error)
	Find(ctx context.Context, query dao.SeanceQuery) ([]dao.Seance, error)
	FreezeStarted(ctx context.Context, now time.Time) (int64, error)
}

type SeanceRepository struct {
	dao SeanceDAO
}

func NewSeanceRepository(dao SeanceDAO) *SeanceRepository {
	return &SeanceRepository{
		dao: dao,
	}
}

func (r *SeanceRepository) Create(ctx context.Context, seance domain.Seance) (domain.Seance, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(seance))
	if err != nil {
		return domain.Seance{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SeanceRepository) CreateBatch(ctx context.Context, seances []domain.Seance) ([]domain.Seance, error) {
	daoSeances := make([]dao.Seance, len(seances))
	for i, s := range seances {
		daoSeances[i] = r.domainToDao(s)
	}

	created, err := r.dao.InsertBatch(ctx, daoSeances)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	result := make([]domain.Seance, len(created))
	for i, s := range created {
		result[i] = r.daoToDomain(s)
	}

	return result, nil
}

func (r *SeanceRepository) Update(ctx context.Context, seance domain.Seance, now time.Time) (domain.Seance, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(seance), now)
	if err != nil {
		return domain.Seance{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SeanceRepository) FindByID(ctx context.Context, id uint) (domain.Seance, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Seance{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SeanceRepository) Find(ctx context.Context, query SeanceQuery) ([]domain.Seance, error) {
	found, err := r.dao.Find(ctx, dao.SeanceQuery{
		HallID:        query.HallID,
		StartFrom:     query.StartFrom,
		StartTo:       query.StartTo,
		TimeOfDayFrom: query.TimeOfDayFrom,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	seances := make([]domain.Seance, len(found))
	for i, s := range found {
		seances[i] = r.daoToDomain(s)
	}

	return seances, nil
}

func (r *SeanceRepository) FreezeStarted(ctx context.Context, now time.Time) (int64, error) {
	frozen, err := r.dao.FreezeStarted(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("r.dao.FreezeStarted -> %w", err)
	}

	return frozen, nil
}

func (r *SeanceRepository) domainToDao(s domain.Seance) dao.Seance {
	return dao.Seance{
		ID:             s.ID,
		HallID:         s.HallID,
		FilmID:         s.FilmID,
		StartTime:      s.StartTime,
		FinishTime:     s.FinishTime,
		Price:          s.Price,
		RemainingSeats: s.RemainingSeats,
		IsEditable:     s.IsEditable,
	}
}

func (r *SeanceRepository) daoToDomain(s dao.Seance) domain.Seance {
	seance := domain.Seance{
		ID:             s.ID,
		HallID:         s.HallID,
		FilmID:         s.FilmID,
		StartTime:      s.StartTime,
		FinishTime:     s.FinishTime,
		Price:          s.Price,
		RemainingSeats: s.RemainingSeats,
		IsEditable:     s.IsEditable,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}

	if s.Hall.ID != 0 {
		seance.Hall = &domain.Hall{
			ID:          s.Hall.ID,
			Name:        s.Hall.Name,
			Rows:        s.Hall.Rows,
			SeatsPerRow: s.Hall.SeatsPerRow,
			IsEditable:  s.Hall.IsEditable,
		}
	}
	if s.Film.ID != 0 {
		seance.Film = &domain.Film{
			ID:          s.Film.ID,
			Title:       s.Film.Title,
			Description: s.Film.Description,
			ReleaseDate: s.Film.ReleaseDate,
			DurationMin: s.Film.DurationMin,
		}
	}

	return seance
}
