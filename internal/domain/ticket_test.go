package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidatePurchase(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	hall := Hall{Rows: 5, SeatsPerRow: 10}
	seance := Seance{
		StartTime:      now.Add(2 * time.Hour),
		Price:          250,
		RemainingSeats: 48,
	}
	taken := map[SeatRef]bool{
		{Row: 1, Seat: 1}: true,
		{Row: 1, Seat: 2}: true,
	}

	tests := []struct {
		name    string
		seance  Seance
		wallet  float64
		seats   []SeatRef
		wantErr error
	}{
		{
			name:   "happy path",
			seance: seance,
			wallet: 1000,
			seats:  []SeatRef{{Row: 2, Seat: 3}, {Row: 2, Seat: 4}},
		},
		{
			name:    "sale closed once started",
			seance:  Seance{StartTime: now.Add(-time.Minute), Price: 250, RemainingSeats: 48},
			wallet:  1000,
			seats:   []SeatRef{{Row: 2, Seat: 3}},
			wantErr: ErrSaleClosed,
		},
		{
			name:    "sold out",
			seance:  Seance{StartTime: now.Add(2 * time.Hour), Price: 250, RemainingSeats: 0},
			wallet:  1000,
			seats:   []SeatRef{{Row: 2, Seat: 3}},
			wantErr: ErrSoldOut,
		},
		{
			name:    "empty selection",
			seance:  seance,
			wallet:  1000,
			seats:   nil,
			wantErr: ErrEmptySelection,
		},
		{
			name:    "more seats than remain",
			seance:  Seance{StartTime: now.Add(2 * time.Hour), Price: 250, RemainingSeats: 1},
			wallet:  1000,
			seats:   []SeatRef{{Row: 2, Seat: 3}, {Row: 2, Seat: 4}},
			wantErr: ErrSoldOut,
		},
		{
			name:    "row out of range",
			seance:  seance,
			wallet:  1000,
			seats:   []SeatRef{{Row: 6, Seat: 3}},
			wantErr: ErrSeatOutOfRange,
		},
		{
			name:    "seat out of range",
			seance:  seance,
			wallet:  1000,
			seats:   []SeatRef{{Row: 2, Seat: 11}},
			wantErr: ErrSeatOutOfRange,
		},
		{
			name:    "zero-based seat rejected",
			seance:  seance,
			wallet:  1000,
			seats:   []SeatRef{{Row: 0, Seat: 1}},
			wantErr: ErrSeatOutOfRange,
		},
		{
			name:    "seat already sold",
			seance:  seance,
			wallet:  1000,
			seats:   []SeatRef{{Row: 1, Seat: 1}},
			wantErr: ErrSeatTaken,
		},
		{
			name:    "duplicate seat in one request",
			seance:  seance,
			wallet:  1000,
			seats:   []SeatRef{{Row: 2, Seat: 3}, {Row: 2, Seat: 3}},
			wantErr: ErrSeatTaken,
		},
		{
			name:    "insufficient funds",
			seance:  seance,
			wallet:  499.99,
			seats:   []SeatRef{{Row: 2, Seat: 3}, {Row: 2, Seat: 4}},
			wantErr: ErrInsufficientFunds,
		},
		{
			name:   "wallet covers the total exactly",
			seance: seance,
			wallet: 500,
			seats:  []SeatRef{{Row: 2, Seat: 3}, {Row: 2, Seat: 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePurchase(tt.seance, hall, taken, tt.wallet, tt.seats, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHall_Contains(t *testing.T) {
	hall := Hall{Rows: 3, SeatsPerRow: 4}

	assert.True(t, hall.Contains(1, 1))
	assert.True(t, hall.Contains(3, 4))
	assert.False(t, hall.Contains(0, 1))
	assert.False(t, hall.Contains(1, 0))
	assert.False(t, hall.Contains(4, 1))
	assert.False(t, hall.Contains(1, 5))
}

func TestHall_TotalSeats(t *testing.T) {
	assert.Equal(t, 12, Hall{Rows: 3, SeatsPerRow: 4}.TotalSeats())
	assert.Equal(t, 0, Hall{}.TotalSeats())
}
