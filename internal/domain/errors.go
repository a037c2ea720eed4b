package domain

import "errors"

// Business-rule violations surfaced to API clients. Storage-shaped
// errors (not found, duplicate key) live in the dao package.
var (
	// Scheduling.
	ErrSeanceOverlap     = errors.New("seance overlaps with another seance in the same hall")
	ErrBeforeReleaseDate = errors.New("seance cannot start before the film's release date")
	ErrStartInPast       = errors.New("seance start time must be in the future")
	ErrSeanceNotEditable = errors.New("seance is not editable")
	ErrSeanceStarted     = errors.New("seance has already started")
	ErrSeanceHasSales    = errors.New("seance already has sold tickets")
	ErrHallNotEditable   = errors.New("hall is not editable")

	// Purchasing.
	ErrSaleClosed        = errors.New("sales are closed for this seance")
	ErrSoldOut           = errors.New("not enough free seats left for this seance")
	ErrEmptySelection    = errors.New("no seats selected")
	ErrSeatOutOfRange    = errors.New("requested seat is outside the hall's grid")
	ErrSeatTaken         = errors.New("seat is already taken")
	ErrInsufficientFunds = errors.New("not enough funds in the wallet")
)
