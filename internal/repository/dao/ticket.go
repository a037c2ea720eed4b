package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/screenhouse/cinema-api/internal/domain"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	UserID   uint `gorm:"not null;index"`
	SeanceID uint `gorm:"not null;uniqueIndex:idx_tickets_seance_row_seat"`
	Row      int  `gorm:"not null;uniqueIndex:idx_tickets_seance_row_seat"`
	Seat     int  `gorm:"not null;uniqueIndex:idx_tickets_seance_row_seat"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Seance Seance `gorm:"foreignKey:SeanceID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// InsertPurchase sells the requested seats as one transaction. The
// seance and buyer rows are locked up front, every rule from
// domain.ValidatePurchase runs against that locked snapshot, and the
// ticket inserts, the remaining-seats decrement and the wallet debit
// commit together or not at all. The unique index on
// (seance_id, row, seat) backstops any race the locks miss: a concurrent
// winner turns this buyer's commit into domain.ErrSeatTaken.
func (d *TicketDAO) InsertPurchase(ctx context.Context, userID, seanceID uint, seats []domain.SeatRef, now time.Time) ([]Ticket, error) {
	var created []Ticket

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seance Seance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seance, seanceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSeanceNotFound
			}

			return err
		}

		var hall Hall
		if err := tx.First(&hall, seance.HallID).Error; err != nil {
			return err
		}

		var user User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return err
		}

		var sold []Ticket
		if err := tx.Where("seance_id = ?", seanceID).Find(&sold).Error; err != nil {
			return err
		}
		taken := make(map[domain.SeatRef]bool, len(sold))
		for _, t := range sold {
			taken[domain.SeatRef{Row: t.Row, Seat: t.Seat}] = true
		}

		err := domain.ValidatePurchase(
			domain.Seance{StartTime: seance.StartTime, Price: seance.Price, RemainingSeats: seance.RemainingSeats},
			domain.Hall{Rows: hall.Rows, SeatsPerRow: hall.SeatsPerRow},
			taken, user.Wallet, seats, now,
		)
		if err != nil {
			return err
		}

		created = make([]Ticket, 0, len(seats))
		for _, ref := range seats {
			created = append(created, Ticket{
				UserID:   userID,
				SeanceID: seanceID,
				Row:      ref.Row,
				Seat:     ref.Seat,
			})
		}
		if err = tx.Omit("User", "Seance").Create(&created).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrSeatTaken
			}

			return err
		}

		// A sold seat freezes the seance for structural edits.
		err = tx.Model(&Seance{}).Where("id = ?", seanceID).Updates(map[string]interface{}{
			"remaining_seats": gorm.Expr("remaining_seats - ?", len(seats)),
			"is_editable":     false,
		}).Error
		if err != nil {
			return err
		}

		total := seance.Price * float64(len(seats))
		err = tx.Model(&User{}).Where("id = ?", userID).
			Update("wallet", gorm.Expr("wallet - ?", total)).Error
		if err != nil {
			return err
		}

		for i := range created {
			created[i].Seance = seance
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (d *TicketDAO) FindBySeance(ctx context.Context, seanceID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Where("seance_id = ?", seanceID).Order("row, seat").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindByUser(ctx context.Context, userID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Preload("Seance").Preload("Seance.Film").Preload("Seance.Hall").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// FindByIDForUser returns the ticket only when it belongs to the user.
func (d *TicketDAO) FindByIDForUser(ctx context.Context, id, userID uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).
		Preload("Seance").Preload("Seance.Film").Preload("Seance.Hall").
		First(&ticket, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) CountBySeance(ctx context.Context, seanceID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Ticket{}).Where("seance_id = ?", seanceID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
