package domain

import "time"

// Seance is a single scheduled screening of a film in a hall.
// FinishTime is always derived from StartTime plus the film's duration,
// and RemainingSeats mirrors hall.TotalSeats() minus sold tickets.
type Seance struct {
	ID             uint      `json:"id"`
	HallID         uint      `json:"hall_id"`
	FilmID         uint      `json:"film_id"`
	StartTime      time.Time `json:"start_time"`
	FinishTime     time.Time `json:"finish_time"`
	Price          float64   `json:"price"`
	RemainingSeats int       `json:"remaining_seats"`
	IsEditable     bool      `json:"is_editable"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Hall *Hall `json:"hall,omitempty"`
	Film *Film `json:"film,omitempty"`
}

// Overlaps applies the half-open interval test: [start, finish) and
// [s.StartTime, s.FinishTime) intersect. Back-to-back seances
// (finish == next start) do not overlap.
func (s Seance) Overlaps(start, finish time.Time) bool {
	return s.StartTime.Before(finish) && start.Before(s.FinishTime)
}

// Started reports whether ticket sales and edits are closed because the
// screening has begun.
func (s Seance) Started(now time.Time) bool {
	return !s.StartTime.After(now)
}

// ValidateSchedule checks the scheduling rules that do not require
// looking at sibling seances: the start must be strictly in the future
// and no earlier than the film's release date.
func ValidateSchedule(film Film, start, now time.Time) error {
	if !start.After(now) {
		return ErrStartInPast
	}
	if dateOnly(start).Before(dateOnly(film.ReleaseDate)) {
		return ErrBeforeReleaseDate
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
