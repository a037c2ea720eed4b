package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type LifecycleSeanceRepository interface {
	FreezeStarted(ctx context.Context, now time.Time) (int64, error)
}

type LifecycleHallRepository interface {
	FreezeSoldHalls(ctx context.Context) (int64, error)
}

// LifecycleService keeps the editability flags consistent in the
// background: seances whose start time has passed and halls with sold
// tickets are frozen by periodic single-statement updates. The flags
// only ever go from editable to frozen, so each sweep is idempotent.
type LifecycleService struct {
	seanceRepo LifecycleSeanceRepository
	hallRepo   LifecycleHallRepository

	now func() time.Time
}

func NewLifecycleService(seanceRepo LifecycleSeanceRepository, hallRepo LifecycleHallRepository) *LifecycleService {
	return &LifecycleService{
		seanceRepo: seanceRepo,
		hallRepo:   hallRepo,
		now:        time.Now,
	}
}

func (s *LifecycleService) Sweep(ctx context.Context) {
	seances, err := s.seanceRepo.FreezeStarted(ctx, s.now())
	if err != nil {
		zap.L().Error("lifecycle sweep: freeze started seances", zap.Error(err))
	}

	halls, err := s.hallRepo.FreezeSoldHalls(ctx)
	if err != nil {
		zap.L().Error("lifecycle sweep: freeze sold halls", zap.Error(err))
	}

	if seances > 0 || halls > 0 {
		zap.L().Info("lifecycle sweep",
			zap.Int64("seances_frozen", seances),
			zap.Int64("halls_frozen", halls))
	}
}

// Run sweeps immediately, then on every tick until the context is done.
func (s *LifecycleService) Run(ctx context.Context, interval time.Duration) {
	s.Sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}
