package domain

import "time"

// Hall is an auditorium with a rectangular row/seat grid. Once any seat
// in any of its seances has been sold, the hall is frozen (IsEditable
// becomes false) and its grid can no longer change.
type Hall struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Rows        int       `json:"rows"`
	SeatsPerRow int       `json:"seats_per_row"`
	IsEditable  bool      `json:"is_editable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h Hall) TotalSeats() int {
	return h.Rows * h.SeatsPerRow
}

// Contains reports whether the 1-based (row, seat) pair falls inside the
// hall's grid.
func (h Hall) Contains(row, seat int) bool {
	return row >= 1 && seat >= 1 && row <= h.Rows && seat <= h.SeatsPerRow
}
