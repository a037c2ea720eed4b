package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/screenhouse/cinema-api/internal/domain"
)

var ErrSeanceNotFound = errors.New("seance not found")

type Seance struct {
	ID uint `gorm:"primaryKey"`

	HallID uint `gorm:"not null;index"`
	FilmID uint `gorm:"not null;index"`
	Hall   Hall `gorm:"foreignKey:HallID;constraint:OnDelete:CASCADE"`
	Film   Film `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE"`

	StartTime      time.Time `gorm:"not null;index"`
	FinishTime     time.Time `gorm:"not null"`
	Price          float64   `gorm:"type:numeric(6,2);not null"`
	RemainingSeats int       `gorm:"not null"`
	IsEditable     bool      `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// SeanceQuery narrows seance listings. TimeOfDayFrom keeps only seances
// whose start's time-of-day is at or past the given clock time; it backs
// the implicit "rest of today" filter.
type SeanceQuery struct {
	HallID        *uint
	StartFrom     *time.Time
	StartTo       *time.Time
	TimeOfDayFrom *time.Time
}

type SeanceDAO struct {
	db *gorm.DB
}

func NewSeanceDAO(db *gorm.DB) *SeanceDAO {
	return &SeanceDAO{
		db: db,
	}
}

// Insert creates the seance after verifying no other seance in the hall
// overlaps [StartTime, FinishTime). The hall row is locked for the
// duration of the transaction so concurrent scheduling for the same hall
// serializes instead of double-booking the slot.
func (d *SeanceDAO) Insert(ctx context.Context, seance Seance) (Seance, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockHall(tx, seance.HallID); err != nil {
			return err
		}
		if err := checkOverlap(tx, seance, 0); err != nil {
			return err
		}

		return tx.Omit("Hall", "Film").Create(&seance).Error
	})
	if err != nil {
		return Seance{}, err
	}

	return seance, nil
}

// InsertBatch creates all seances in one transaction; any overlap or
// storage failure rolls back every insert. Earlier occurrences in the
// batch are visible to later overlap checks.
func (d *SeanceDAO) InsertBatch(ctx context.Context, seances []Seance) ([]Seance, error) {
	if len(seances) == 0 {
		return nil, nil
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockHall(tx, seances[0].HallID); err != nil {
			return err
		}

		for i := range seances {
			if err := checkOverlap(tx, seances[i], 0); err != nil {
				return err
			}
			if err := tx.Omit("Hall", "Film").Create(&seances[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return seances, nil
}

// Update rewrites a seance's schedulable fields. All editability checks
// run inside the transaction against a locked row, so a ticket sold a
// moment earlier is guaranteed to be visible. Scheduling serializes on
// the hall row exactly as Insert does; on a hall move both halls are
// locked in ID order.
func (d *SeanceDAO) Update(ctx context.Context, seance Seance, now time.Time) (Seance, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Seance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, seance.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSeanceNotFound
			}

			return err
		}

		hallIDs := []uint{seance.HallID}
		if current.HallID != seance.HallID {
			if current.HallID < seance.HallID {
				hallIDs = []uint{current.HallID, seance.HallID}
			} else {
				hallIDs = []uint{seance.HallID, current.HallID}
			}
		}
		for _, hallID := range hallIDs {
			if err := lockHall(tx, hallID); err != nil {
				return err
			}
		}

		if !current.StartTime.After(now) {
			return domain.ErrSeanceStarted
		}
		if !current.IsEditable {
			return domain.ErrSeanceNotEditable
		}

		var sold int64
		if err := tx.Model(&Ticket{}).Where("seance_id = ?", seance.ID).Count(&sold).Error; err != nil {
			return err
		}
		if sold > 0 {
			return domain.ErrSeanceHasSales
		}

		if err := checkOverlap(tx, seance, seance.ID); err != nil {
			return err
		}

		return tx.Model(&Seance{}).Where("id = ?", seance.ID).Updates(map[string]interface{}{
			"hall_id":         seance.HallID,
			"film_id":         seance.FilmID,
			"start_time":      seance.StartTime,
			"finish_time":     seance.FinishTime,
			"price":           seance.Price,
			"remaining_seats": seance.RemainingSeats,
		}).Error
	})
	if err != nil {
		return Seance{}, err
	}

	return d.FindByID(ctx, seance.ID)
}

func (d *SeanceDAO) FindByID(ctx context.Context, id uint) (Seance, error) {
	var seance Seance

	result := d.db.WithContext(ctx).Preload("Hall").Preload("Film").First(&seance, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Seance{}, ErrSeanceNotFound
		}

		return Seance{}, result.Error
	}

	return seance, nil
}

func (d *SeanceDAO) Find(ctx context.Context, query SeanceQuery) ([]Seance, error) {
	tx := d.db.WithContext(ctx).Preload("Hall").Preload("Film").Order("start_time")

	if query.HallID != nil {
		tx = tx.Where("hall_id = ?", *query.HallID)
	}
	if query.StartFrom != nil {
		tx = tx.Where("start_time >= ?", *query.StartFrom)
	}
	if query.StartTo != nil {
		tx = tx.Where("start_time < ?", *query.StartTo)
	}
	if query.TimeOfDayFrom != nil {
		tx = tx.Where("start_time::time >= ?::time", *query.TimeOfDayFrom)
	}

	var seances []Seance
	if err := tx.Find(&seances).Error; err != nil {
		return nil, err
	}

	return seances, nil
}

// FreezeStarted flips is_editable off for every editable seance whose
// start time has passed. One statement, no per-row round trips.
func (d *SeanceDAO) FreezeStarted(ctx context.Context, now time.Time) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Seance{}).
		Where("is_editable = true AND start_time <= ?", now).
		Update("is_editable", false)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func lockHall(tx *gorm.DB, hallID uint) error {
	var hall Hall
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&hall, hallID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHallNotFound
		}

		return err
	}

	return nil
}

// checkOverlap runs the half-open interval test in SQL:
// existing.start < new.finish AND new.start < existing.finish.
func checkOverlap(tx *gorm.DB, seance Seance, excludeID uint) error {
	query := tx.Model(&Seance{}).
		Where("hall_id = ? AND start_time < ? AND finish_time > ?",
			seance.HallID, seance.FinishTime, seance.StartTime)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var overlapping int64
	if err := query.Count(&overlapping).Error; err != nil {
		return err
	}
	if overlapping > 0 {
		return domain.ErrSeanceOverlap
	}

	return nil
}
