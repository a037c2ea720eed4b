package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenhouse/cinema-api/internal/domain"
)

type fakeTicketRepo struct {
	purchaseFn func(userID, seanceID uint, seats []domain.SeatRef) ([]domain.Ticket, error)
	byUser     []domain.Ticket
}

func (f *fakeTicketRepo) CreatePurchase(_ context.Context, userID, seanceID uint, seats []domain.SeatRef, _ time.Time) ([]domain.Ticket, error) {
	return f.purchaseFn(userID, seanceID, seats)
}

func (f *fakeTicketRepo) FindByUser(_ context.Context, _ uint) ([]domain.Ticket, error) {
	return f.byUser, nil
}

func (f *fakeTicketRepo) FindByIDForUser(_ context.Context, id, userID uint) (domain.Ticket, error) {
	for _, t := range f.byUser {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}

	return domain.Ticket{}, ErrTicketNotFound
}

type fakeFreezer struct {
	frozenHalls []uint
}

func (f *fakeFreezer) FreezeIfSold(_ context.Context, hallID uint) error {
	f.frozenHalls = append(f.frozenHalls, hallID)

	return nil
}

func TestTicketService_Purchase(t *testing.T) {
	seats := []domain.SeatRef{{Row: 1, Seat: 1}, {Row: 1, Seat: 2}}

	t.Run("successful purchase freezes the hall", func(t *testing.T) {
		repo := &fakeTicketRepo{
			purchaseFn: func(userID, seanceID uint, got []domain.SeatRef) ([]domain.Ticket, error) {
				require.Equal(t, uint(3), userID)
				require.Equal(t, uint(7), seanceID)
				require.Equal(t, seats, got)

				tickets := make([]domain.Ticket, len(got))
				for i, ref := range got {
					tickets[i] = domain.Ticket{
						ID:       uint(i + 1),
						UserID:   userID,
						SeanceID: seanceID,
						Row:      ref.Row,
						Seat:     ref.Seat,
						Seance:   &domain.Seance{ID: seanceID, HallID: 2},
					}
				}

				return tickets, nil
			},
		}
		freezer := &fakeFreezer{}
		svc := NewTicketService(repo, freezer)

		tickets, err := svc.Purchase(context.Background(), 3, 7, seats)

		require.NoError(t, err)
		assert.Len(t, tickets, 2)
		assert.Equal(t, []uint{2}, freezer.frozenHalls)
	})

	t.Run("a failed purchase changes nothing", func(t *testing.T) {
		repo := &fakeTicketRepo{
			purchaseFn: func(uint, uint, []domain.SeatRef) ([]domain.Ticket, error) {
				return nil, domain.ErrSeatTaken
			},
		}
		freezer := &fakeFreezer{}
		svc := NewTicketService(repo, freezer)

		_, err := svc.Purchase(context.Background(), 3, 7, seats)

		assert.ErrorIs(t, err, domain.ErrSeatTaken)
		assert.Empty(t, freezer.frozenHalls)
	})

	t.Run("insufficient funds pass through", func(t *testing.T) {
		repo := &fakeTicketRepo{
			purchaseFn: func(uint, uint, []domain.SeatRef) ([]domain.Ticket, error) {
				return nil, domain.ErrInsufficientFunds
			},
		}
		svc := NewTicketService(repo, &fakeFreezer{})

		_, err := svc.Purchase(context.Background(), 3, 7, seats)

		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})
}

func TestTicketService_GetUserTicket(t *testing.T) {
	repo := &fakeTicketRepo{
		byUser: []domain.Ticket{
			{ID: 1, UserID: 3, SeanceID: 7, Row: 1, Seat: 1},
		},
	}
	svc := NewTicketService(repo, &fakeFreezer{})

	t.Run("owner can read the ticket", func(t *testing.T) {
		ticket, err := svc.GetUserTicket(context.Background(), 1, 3)

		require.NoError(t, err)
		assert.Equal(t, uint(1), ticket.ID)
	})

	t.Run("another user gets not found", func(t *testing.T) {
		_, err := svc.GetUserTicket(context.Background(), 1, 4)

		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}
