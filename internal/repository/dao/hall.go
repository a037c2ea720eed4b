package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/screenhouse/cinema-api/internal/domain"
)

var (
	ErrHallNotFound   = errors.New("hall not found")
	ErrHallNameExists = errors.New("hall with this name already exists")
)

type Hall struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"unique;not null"`
	Rows        int    `gorm:"not null"`
	SeatsPerRow int    `gorm:"not null"`
	IsEditable  bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type HallDAO struct {
	db *gorm.DB
}

func NewHallDAO(db *gorm.DB) *HallDAO {
	return &HallDAO{
		db: db,
	}
}

func (d *HallDAO) Insert(ctx context.Context, hall Hall) (Hall, error) {
	result := d.db.WithContext(ctx).Create(&hall)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_halls_name"`) {
			return Hall{}, ErrHallNameExists
		}

		return Hall{}, result.Error
	}

	return hall, nil
}

func (d *HallDAO) FindByID(ctx context.Context, id uint) (Hall, error) {
	var hall Hall

	result := d.db.WithContext(ctx).First(&hall, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Hall{}, ErrHallNotFound
		}

		return Hall{}, result.Error
	}

	return hall, nil
}

func (d *HallDAO) FindAll(ctx context.Context) ([]Hall, error) {
	var halls []Hall

	result := d.db.WithContext(ctx).Order("name").Find(&halls)
	if result.Error != nil {
		return nil, result.Error
	}

	return halls, nil
}

// Update writes the hall's grid only while the hall is still editable.
// The WHERE clause keeps the check-then-act race-free: a hall frozen by
// a concurrent sale simply matches zero rows. Resizing the grid resyncs
// the seat counters of the hall's unsold seances in the same
// transaction; a seance with any sale is no longer editable and keeps
// its counter.
func (d *HallDAO) Update(ctx context.Context, hall Hall) (Hall, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Hall{}).
			Where("id = ? AND is_editable = true", hall.ID).
			Updates(map[string]interface{}{
				"name":          hall.Name,
				"rows":          hall.Rows,
				"seats_per_row": hall.SeatsPerRow,
			})
		if result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrHallNameExists
			}

			return result.Error
		}
		if result.RowsAffected == 0 {
			var existing Hall
			if err := tx.First(&existing, hall.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrHallNotFound
				}

				return err
			}

			return domain.ErrHallNotEditable
		}

		return tx.Model(&Seance{}).
			Where("hall_id = ? AND is_editable = true", hall.ID).
			Update("remaining_seats", hall.Rows*hall.SeatsPerRow).Error
	})
	if err != nil {
		return Hall{}, err
	}

	return d.FindByID(ctx, hall.ID)
}

// FreezeIfSold flips is_editable off for the hall once any of its
// seances has a sold ticket. Monotonic and idempotent.
func (d *HallDAO) FreezeIfSold(ctx context.Context, hallID uint) error {
	result := d.db.WithContext(ctx).Exec(`
		UPDATE halls SET is_editable = false
		WHERE id = ? AND is_editable = true AND EXISTS (
			SELECT 1 FROM tickets
			JOIN seances ON seances.id = tickets.seance_id
			WHERE seances.hall_id = halls.id
		)`, hallID)

	return result.Error
}

// FreezeSoldHalls is the sweep variant of FreezeIfSold across all halls.
func (d *HallDAO) FreezeSoldHalls(ctx context.Context) (int64, error) {
	result := d.db.WithContext(ctx).Exec(`
		UPDATE halls SET is_editable = false
		WHERE is_editable = true AND EXISTS (
			SELECT 1 FROM tickets
			JOIN seances ON seances.id = tickets.seance_id
			WHERE seances.hall_id = halls.id
		)`)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
