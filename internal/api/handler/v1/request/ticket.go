package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SeatSelection struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

func (s SeatSelection) Validate() error {
	return validation.ValidateStruct(
		&s,
		validation.Field(&s.Row, validation.Required, validation.Min(1)),
		validation.Field(&s.Seat, validation.Required, validation.Min(1)),
	)
}

type PurchaseRequest struct {
	Seats []SeatSelection `json:"seats"`
}

func (req *PurchaseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Seats, validation.Required, validation.Length(1, 0)),
	)
}
