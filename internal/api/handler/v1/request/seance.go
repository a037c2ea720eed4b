package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	dateLayout      = "2006-01-02"
	timeOfDayLayout = "15:04"
)

var errScheduleShapeRequired = errors.New("either start_time or date_from/date_to/time must be given")

// CreateSeanceRequest creates one seance when start_time is set, or a
// daily series when date_from, date_to and time are set.
type CreateSeanceRequest struct {
	HallID uint    `json:"hall_id"`
	FilmID uint    `json:"film_id"`
	Price  float64 `json:"price"`

	StartTime string `json:"start_time"`

	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
	TimeOfDay string `json:"time"`
}

func (req *CreateSeanceRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.HallID, validation.Required),
		validation.Field(&req.FilmID, validation.Required),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.StartTime, validation.Date(time.RFC3339)),
		validation.Field(&req.DateFrom, validation.Date(dateLayout)),
		validation.Field(&req.DateTo, validation.Date(dateLayout)),
		validation.Field(&req.TimeOfDay, validation.Date(timeOfDayLayout)),
	)
	if err != nil {
		return err
	}

	if req.IsSeries() {
		return validation.ValidateStruct(
			req,
			validation.Field(&req.DateFrom, validation.Required),
			validation.Field(&req.DateTo, validation.Required),
			validation.Field(&req.TimeOfDay, validation.Required),
		)
	}

	if req.StartTime == "" {
		return errScheduleShapeRequired
	}

	return nil
}

// IsSeries reports whether the request describes a daily series rather
// than a single seance.
func (req *CreateSeanceRequest) IsSeries() bool {
	return req.DateFrom != "" || req.DateTo != "" || req.TimeOfDay != ""
}

func (req *CreateSeanceRequest) ParsedStartTime() time.Time {
	t, _ := time.Parse(time.RFC3339, req.StartTime)

	return t
}

func (req *CreateSeanceRequest) ParsedDateFrom() time.Time {
	t, _ := time.ParseInLocation(dateLayout, req.DateFrom, time.Local)

	return t
}

func (req *CreateSeanceRequest) ParsedDateTo() time.Time {
	t, _ := time.ParseInLocation(dateLayout, req.DateTo, time.Local)

	return t
}

func (req *CreateSeanceRequest) ParsedTimeOfDay() time.Time {
	t, _ := time.Parse(timeOfDayLayout, req.TimeOfDay)

	return t
}

type UpdateSeanceRequest struct {
	HallID    *uint    `json:"hall_id"`
	FilmID    *uint    `json:"film_id"`
	StartTime *string  `json:"start_time"`
	Price     *float64 `json:"price"`
}

func (req *UpdateSeanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StartTime, validation.Date(time.RFC3339)),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}

func (req *UpdateSeanceRequest) ParsedStartTime() *time.Time {
	if req.StartTime == nil {
		return nil
	}

	t, _ := time.Parse(time.RFC3339, *req.StartTime)

	return &t
}
