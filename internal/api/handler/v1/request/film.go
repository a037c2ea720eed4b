package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateFilmRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date"`
	DurationMin int    `json:"duration_min"`
	ImageURL    string `json:"image_url"`
	TitleImgURL string `json:"title_img_url"`
}

func (req *CreateFilmRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.ReleaseDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.DurationMin, validation.Required, validation.Min(1)),
	)
}

// ParsedReleaseDate must be called after Validate.
func (req *CreateFilmRequest) ParsedReleaseDate() time.Time {
	t, _ := time.Parse("2006-01-02", req.ReleaseDate)

	return t
}
