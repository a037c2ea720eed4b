package repository

import (
	"context"
	"fmt"

	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/repository/dao"
)

var (
	ErrHallNotFound   = dao.ErrHallNotFound
	ErrHallNameExists = dao.ErrHallNameExists
)

type HallDAO interface {
	Insert(ctx context.Context, hall dao.Hall) (dao.Hall, error)
	FindByID(ctx context.Context, id uint) (dao.Hall, error)
	FindAll(ctx context.Context) ([]dao.Hall, error)
	Update(ctx context.Context, hall dao.Hall) (dao.Hall, error)
	FreezeIfSold(ctx context.Context, hallID uint) error
	FreezeSoldHalls(ctx context.Context) (int64, error)
}

type HallRepository struct {
	dao HallDAO
}

func NewHallRepository(dao HallDAO) *HallRepository {
	return &HallRepository{
		dao: dao,
	}
}

func (r *HallRepository) Create(ctx context.Context, hall domain.Hall) (domain.Hall, error) {
	created, err := r.dao.Insert(ctx, dao.Hall{
		Name:        hall.Name,
		Rows:        hall.Rows,
		SeatsPerRow: hall.SeatsPerRow,
		IsEditable:  true,
	})
	if err != nil {
		return domain.Hall{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *HallRepository) FindByID(ctx context.Context, id uint) (domain.Hall, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Hall{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *HallRepository) FindAll(ctx context.Context) ([]domain.Hall, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	halls := make([]domain.Hall, len(found))
	for i, h := range found {
		halls[i] = r.daoToDomain(h)
	}

	return halls, nil
}

func (r *HallRepository) Update(ctx context.Context, hall domain.Hall) (domain.Hall, error) {
	updated, err := r.dao.Update(ctx, dao.Hall{
		ID:          hall.ID,
		Name:        hall.Name,
		Rows:        hall.Rows,
		SeatsPerRow: hall.SeatsPerRow,
	})
	if err != nil {
		return domain.Hall{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *HallRepository) FreezeIfSold(ctx context.Context, hallID uint) error {
	if err := r.dao.FreezeIfSold(ctx, hallID); err != nil {
		return fmt.Errorf("r.dao.FreezeIfSold -> %w", err)
	}

	return nil
}

func (r *HallRepository) FreezeSoldHalls(ctx context.Context) (int64, error) {
	frozen, err := r.dao.FreezeSoldHalls(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.FreezeSoldHalls -> %w", err)
	}

	return frozen, nil
}

func (r *HallRepository) daoToDomain(h dao.Hall) domain.Hall {
	return domain.Hall{
		ID:          h.ID,
		Name:        h.Name,
		Rows:        h.Rows,
		SeatsPerRow: h.SeatsPerRow,
		IsEditable:  h.IsEditable,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}
