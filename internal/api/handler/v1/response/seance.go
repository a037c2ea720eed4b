package response

import "github.com/screenhouse/cinema-api/internal/domain"

// SeanceDetail is a seance together with the already-sold seats, enough
// for a client to render the hall grid.
type SeanceDetail struct {
	domain.Seance

	OccupiedSeats []domain.SeatRef `json:"occupied_seats"`
}
