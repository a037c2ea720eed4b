package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/repository"
)

var (
	ErrTicketNotFound    = repository.ErrTicketNotFound
	ErrSaleClosed        = domain.ErrSaleClosed
	ErrSoldOut           = domain.ErrSoldOut
	ErrEmptySelection    = domain.ErrEmptySelection
	ErrSeatOutOfRange    = domain.ErrSeatOutOfRange
	ErrSeatTaken         = domain.ErrSeatTaken
	ErrInsufficientFunds = domain.ErrInsufficientFunds
)

type TicketRepository interface {
	CreatePurchase(ctx context.Context, userID, seanceID uint, seats []domain.SeatRef, now time.Time) ([]domain.Ticket, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Ticket, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (domain.Ticket, error)
}

type TicketHallRepository interface {
	FreezeIfSold(ctx context.Context, hallID uint) error
}

type TicketService struct {
	repo     TicketRepository
	hallRepo TicketHallRepository

	now func() time.Time
}

func NewTicketService(repo TicketRepository, hallRepo TicketHallRepository) *TicketService {
	return &TicketService{
		repo:     repo,
		hallRepo: hallRepo,
		now:      time.Now,
	}
}

// Purchase buys the requested seats as one all-or-nothing transaction:
// either every seat is secured and the wallet debited, or nothing
// changes. The first sale also freezes the seance's hall.
func (s *TicketService) Purchase(ctx context.Context, userID, seanceID uint, seats []domain.SeatRef) ([]domain.Ticket, error) {
	tickets, err := s.repo.CreatePurchase(ctx, userID, seanceID, seats, s.now())
	if err != nil {
		return nil, fmt.Errorf("s.repo.CreatePurchase -> %w", err)
	}

	// The hall freeze is advisory bookkeeping outside the purchase
	// transaction; the periodic sweep catches any miss.
	if len(tickets) > 0 && tickets[0].Seance != nil {
		if err = s.hallRepo.FreezeIfSold(ctx, tickets[0].Seance.HallID); err != nil {
			zap.L().Warn("failed to freeze hall after sale",
				zap.Uint("seance_id", seanceID),
				zap.Error(err))
		}
	}

	return tickets, nil
}

func (s *TicketService) ListUserTickets(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return tickets, nil
}

func (s *TicketService) GetUserTicket(ctx context.Context, id, userID uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByIDForUser -> %w", err)
	}

	return ticket, nil
}
