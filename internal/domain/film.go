package domain

import "time"

// Film metadata. (Title, ReleaseDate) is unique; DurationMin is the
// immutable running time that seance finish times are derived from.
type Film struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"release_date"`
	DurationMin int       `json:"duration_min"`
	ImageURL    string    `json:"image_url,omitempty"`
	TitleImgURL string    `json:"title_img_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated on list/detail reads when the film has seances scheduled.
	EarliestSeance *time.Time `json:"earliest_seance,omitempty"`
	LatestSeance   *time.Time `json:"latest_seance,omitempty"`
}

func (f Film) Duration() time.Duration {
	return time.Duration(f.DurationMin) * time.Minute
}
