package service

import (
	"context"
	"fmt"
	"time"

	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/repository"
)

var (
	ErrSeanceNotFound    = repository.ErrSeanceNotFound
	ErrSeanceOverlap     = domain.ErrSeanceOverlap
	ErrStartInPast       = domain.ErrStartInPast
	ErrBeforeReleaseDate = domain.ErrBeforeReleaseDate
)

type SeanceRepository interface {
	Create(ctx context.Context, seance domain.Seance) (domain.Seance, error)
	CreateBatch(ctx context.Context, seances []domain.Seance) ([]domain.Seance, error)
	Update(ctx context.Context, seance domain.Seance, now time.Time) (domain.Seance, error)
	FindByID(ctx context.Context, id uint) (domain.Seance, error)
	Find(ctx context.Context, query repository.SeanceQuery) ([]domain.Seance, error)
}

type SeanceTicketRepository interface {
	FindBySeance(ctx context.Context, seanceID uint) ([]domain.Ticket, error)
}

type CreateSeanceInput struct {
	HallID uint
	FilmID uint
	Start  time.Time
	Price  float64
}

// CreateSeanceRangeInput schedules one seance per day at the same clock
// time, from DateFrom through DateTo inclusive.
type CreateSeanceRangeInput struct {
	HallID    uint
	FilmID    uint
	DateFrom  time.Time
	DateTo    time.Time
	TimeOfDay time.Time
	Price     float64
}

type UpdateSeancePatch struct {
	HallID *uint
	FilmID *uint
	Start  *time.Time
	Price  *float64
}

type SeanceService struct {
	repo       SeanceRepository
	hallRepo   HallRepository
	filmRepo   FilmRepository
	ticketRepo SeanceTicketRepository

	now func() time.Time
}

func NewSeanceService(repo SeanceRepository, hallRepo HallRepository, filmRepo FilmRepository, ticketRepo SeanceTicketRepository) *SeanceService {
	return &SeanceService{
		repo:       repo,
		hallRepo:   hallRepo,
		filmRepo:   filmRepo,
		ticketRepo: ticketRepo,
		now:        time.Now,
	}
}

func (s *SeanceService) CreateSeance(ctx context.Context, input CreateSeanceInput) (domain.Seance, error) {
	seance, err := s.buildSeance(ctx, input)
	if err != nil {
		return domain.Seance{}, err
	}

	created, err := s.repo.Create(ctx, seance)
	if err != nil {
		return domain.Seance{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// CreateSeanceRange creates the whole series in one transaction: if any
// day fails a scheduling rule or overlaps an existing seance, none of
// the seances are created.
func (s *SeanceService) CreateSeanceRange(ctx context.Context, input CreateSeanceRangeInput) ([]domain.Seance, error) {
	if input.DateTo.Before(input.DateFrom) {
		return nil, ErrStartInPast
	}

	hall, err := s.hallRepo.FindByID(ctx, input.HallID)
	if err != nil {
		return nil, fmt.Errorf("s.hallRepo.FindByID -> %w", err)
	}

	film, err := s.filmRepo.FindByID(ctx, input.FilmID)
	if err != nil {
		return nil, fmt.Errorf("s.filmRepo.FindByID -> %w", err)
	}

	now := s.now()
	var seances []domain.Seance
	for day := dateOf(input.DateFrom); !day.After(dateOf(input.DateTo)); day = day.AddDate(0, 0, 1) {
		start := time.Date(day.Year(), day.Month(), day.Day(),
			input.TimeOfDay.Hour(), input.TimeOfDay.Minute(), 0, 0, day.Location())

		if err = domain.ValidateSchedule(film, start, now); err != nil {
			return nil, err
		}

		seances = append(seances, domain.Seance{
			HallID:         hall.ID,
			FilmID:         film.ID,
			StartTime:      start,
			FinishTime:     start.Add(film.Duration()),
			Price:          input.Price,
			RemainingSeats: hall.TotalSeats(),
			IsEditable:     true,
		})
	}

	created, err := s.repo.CreateBatch(ctx, seances)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CreateBatch -> %w", err)
	}

	return created, nil
}

// UpdateSeance applies a partial update. Rescheduling recomputes the
// finish time from the film's duration; seances that have started or
// already sold tickets reject the update at the storage layer.
func (s *SeanceService) UpdateSeance(ctx context.Context, id uint, patch UpdateSeancePatch) (domain.Seance, error) {
	seance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Seance{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// A started seance is frozen outright; report that before any
	// schedule validation on the patched fields.
	now := s.now()
	if seance.Started(now) {
		return domain.Seance{}, domain.ErrSeanceStarted
	}

	if patch.HallID != nil && *patch.HallID != seance.HallID {
		hall, err := s.hallRepo.FindByID(ctx, *patch.HallID)
		if err != nil {
			return domain.Seance{}, fmt.Errorf("s.hallRepo.FindByID -> %w", err)
		}
		seance.HallID = hall.ID
		seance.RemainingSeats = hall.TotalSeats()
	}
	if patch.FilmID != nil {
		seance.FilmID = *patch.FilmID
	}
	if patch.Start != nil {
		seance.StartTime = *patch.Start
	}
	if patch.Price != nil {
		seance.Price = *patch.Price
	}

	film, err := s.filmRepo.FindByID(ctx, seance.FilmID)
	if err != nil {
		return domain.Seance{}, fmt.Errorf("s.filmRepo.FindByID -> %w", err)
	}

	if err = domain.ValidateSchedule(film, seance.StartTime, now); err != nil {
		return domain.Seance{}, err
	}
	seance.FinishTime = seance.StartTime.Add(film.Duration())

	updated, err := s.repo.Update(ctx, seance, now)
	if err != nil {
		return domain.Seance{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// ListSeancesInput narrows a seance listing. With both bounds set the
// window is [StartTime, EndTime); with only StartTime set the listing is
// restricted to today's seances whose time-of-day is at or past
// StartTime's; with only EndTime set the window runs from today up to
// EndTime; with neither, it defaults to seances starting today or
// later.
type ListSeancesInput struct {
	HallID    *uint
	StartTime *time.Time
	EndTime   *time.Time
}

func (s *SeanceService) ListSeances(ctx context.Context, input ListSeancesInput) ([]domain.Seance, error) {
	query := repository.SeanceQuery{HallID: input.HallID}

	switch {
	case input.StartTime != nil && input.EndTime != nil:
		query.StartFrom = input.StartTime
		query.StartTo = input.EndTime
	case input.StartTime != nil:
		// Only a start: today's listings from that time of day on.
		dayStart := dateOf(s.now())
		dayEnd := dayStart.AddDate(0, 0, 1)
		query.StartFrom = &dayStart
		query.StartTo = &dayEnd
		query.TimeOfDayFrom = input.StartTime
	case input.EndTime != nil:
		today := dateOf(s.now())
		query.StartFrom = &today
		query.StartTo = input.EndTime
	default:
		today := dateOf(s.now())
		query.StartFrom = &today
	}

	seances, err := s.repo.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return seances, nil
}

// ListSeancesOn lists every seance of the calendar day at the given
// offset from today (0 for today, 1 for tomorrow).
func (s *SeanceService) ListSeancesOn(ctx context.Context, dayOffset int) ([]domain.Seance, error) {
	dayStart := dateOf(s.now()).AddDate(0, 0, dayOffset)
	dayEnd := dayStart.AddDate(0, 0, 1)

	seances, err := s.repo.Find(ctx, repository.SeanceQuery{
		StartFrom: &dayStart,
		StartTo:   &dayEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return seances, nil
}

// GetSeanceWithSeats returns the seance together with the seats already
// sold, so clients can render the hall grid.
func (s *SeanceService) GetSeanceWithSeats(ctx context.Context, id uint) (domain.Seance, []domain.SeatRef, error) {
	seance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Seance{}, nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	tickets, err := s.ticketRepo.FindBySeance(ctx, id)
	if err != nil {
		return domain.Seance{}, nil, fmt.Errorf("s.ticketRepo.FindBySeance -> %w", err)
	}

	occupied := make([]domain.SeatRef, len(tickets))
	for i, t := range tickets {
		occupied[i] = domain.SeatRef{Row: t.Row, Seat: t.Seat}
	}

	return seance, occupied, nil
}

func (s *SeanceService) buildSeance(ctx context.Context, input CreateSeanceInput) (domain.Seance, error) {
	hall, err := s.hallRepo.FindByID(ctx, input.HallID)
	if err != nil {
		return domain.Seance{}, fmt.Errorf("s.hallRepo.FindByID -> %w", err)
	}

	film, err := s.filmRepo.FindByID(ctx, input.FilmID)
	if err != nil {
		return domain.Seance{}, fmt.Errorf("s.filmRepo.FindByID -> %w", err)
	}

	if err = domain.ValidateSchedule(film, input.Start, s.now()); err != nil {
		return domain.Seance{}, err
	}

	return domain.Seance{
		HallID:         hall.ID,
		FilmID:         film.ID,
		StartTime:      input.Start,
		FinishTime:     input.Start.Add(film.Duration()),
		Price:          input.Price,
		RemainingSeats: hall.TotalSeats(),
		IsEditable:     true,
	}, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
