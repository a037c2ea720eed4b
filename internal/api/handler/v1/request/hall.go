package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateHallRequest struct {
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

func (req *CreateHallRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Rows, validation.Required, validation.Min(1)),
		validation.Field(&req.SeatsPerRow, validation.Required, validation.Min(1)),
	)
}

type UpdateHallRequest struct {
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

func (req *UpdateHallRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Rows, validation.Required, validation.Min(1)),
		validation.Field(&req.SeatsPerRow, validation.Required, validation.Min(1)),
	)
}
