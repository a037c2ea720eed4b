package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/repository/dao"
)

var ErrTicketNotFound = dao.ErrTicketNotFound

type TicketDAO interface {
	InsertPurchase(ctx context.Context, userID, seanceID uint, seats []domain.SeatRef, now time.Time) ([]dao.Ticket, error)
	FindBySeance(ctx context.Context, seanceID uint) ([]dao.Ticket, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.Ticket, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (dao.Ticket, error)
	CountBySeance(ctx context.Context, seanceID uint) (int64, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

// CreatePurchase runs the whole check-then-act purchase inside one
// storage transaction; see dao.TicketDAO.InsertPurchase.
func (r *TicketRepository) CreatePurchase(ctx context.Context, userID, seanceID uint, seats []domain.SeatRef, now time.Time) ([]domain.Ticket, error) {
	created, err := r.dao.InsertPurchase(ctx, userID, seanceID, seats, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertPurchase -> %w", err)
	}

	tickets := make([]domain.Ticket, len(created))
	for i, t := range created {
		tickets[i] = r.daoToDomain(t)
	}

	return tickets, nil
}

func (r *TicketRepository) FindBySeance(ctx context.Context, seanceID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindBySeance(ctx, seanceID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySeance -> %w", err)
	}

	tickets := make([]domain.Ticket, len(found))
	for i, t := range found {
		tickets[i] = r.daoToDomain(t)
	}

	return tickets, nil
}

func (r *TicketRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	tickets := make([]domain.Ticket, len(found))
	for i, t := range found {
		tickets[i] = r.daoToDomain(t)
	}

	return tickets, nil
}

func (r *TicketRepository) FindByIDForUser(ctx context.Context, id, userID uint) (domain.Ticket, error) {
	found, err := r.dao.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByIDForUser -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) CountBySeance(ctx context.Context, seanceID uint) (int64, error) {
	count, err := r.dao.CountBySeance(ctx, seanceID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBySeance -> %w", err)
	}

	return count, nil
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	ticket := domain.Ticket{
		ID:        t.ID,
		UserID:    t.UserID,
		SeanceID:  t.SeanceID,
		Row:       t.Row,
		Seat:      t.Seat,
		CreatedAt: t.CreatedAt,
	}

	if t.Seance.ID != 0 {
		seance := domain.Seance{
			ID:             t.Seance.ID,
			HallID:         t.Seance.HallID,
			FilmID:         t.Seance.FilmID,
			StartTime:      t.Seance.StartTime,
			FinishTime:     t.Seance.FinishTime,
			Price:          t.Seance.Price,
			RemainingSeats: t.Seance.RemainingSeats,
			IsEditable:     t.Seance.IsEditable,
		}
		if t.Seance.Film.ID != 0 {
			seance.Film = &domain.Film{
				ID:          t.Seance.Film.ID,
				Title:       t.Seance.Film.Title,
				ReleaseDate: t.Seance.Film.ReleaseDate,
				DurationMin: t.Seance.Film.DurationMin,
			}
		}
		if t.Seance.Hall.ID != 0 {
			seance.Hall = &domain.Hall{
				ID:          t.Seance.Hall.ID,
				Name:        t.Seance.Hall.Name,
				Rows:        t.Seance.Hall.Rows,
				SeatsPerRow: t.Seance.Hall.SeatsPerRow,
			}
		}
		ticket.Seance = &seance
	}

	return ticket
}
