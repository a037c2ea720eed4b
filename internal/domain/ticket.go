package domain

import "time"

// Ticket is a sold claim on one seat for one seance. Tickets are
// insert-only; (SeanceID, Row, Seat) is unique.
type Ticket struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	SeanceID  uint      `json:"seance_id"`
	Row       int       `json:"row"`
	Seat      int       `json:"seat"`
	CreatedAt time.Time `json:"created_at"`

	Seance *Seance `json:"seance,omitempty"`
}

// SeatRef identifies one seat in a hall grid, 1-based.
type SeatRef struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// ValidatePurchase applies the full purchase rule set against a
// consistent snapshot of the seance, its hall, the already-sold seats
// and the buyer's wallet. The caller must hold row locks on the seance
// and the buyer for the duration of the transaction so that the
// snapshot cannot go stale before the tickets are written.
func ValidatePurchase(seance Seance, hall Hall, taken map[SeatRef]bool, wallet float64, seats []SeatRef, now time.Time) error {
	if seance.Started(now) {
		return ErrSaleClosed
	}
	if seance.RemainingSeats == 0 {
		return ErrSoldOut
	}
	if len(seats) == 0 {
		return ErrEmptySelection
	}
	if len(seats) > seance.RemainingSeats {
		return ErrSoldOut
	}

	requested := make(map[SeatRef]bool, len(seats))
	for _, ref := range seats {
		if !hall.Contains(ref.Row, ref.Seat) {
			return ErrSeatOutOfRange
		}
		if taken[ref] || requested[ref] {
			return ErrSeatTaken
		}
		requested[ref] = true
	}

	if wallet < seance.Price*float64(len(seats)) {
		return ErrInsufficientFunds
	}

	return nil
}
