package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFilmNotFound = errors.New("film not found")
	ErrFilmExists   = errors.New("film with this title and release date already exists")
)

type Film struct {
	ID uint `gorm:"primaryKey"`

	Title       string    `gorm:"not null;uniqueIndex:idx_films_title_release"`
	Description string    ``
	ReleaseDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_films_title_release"`
	DurationMin int       `gorm:"not null"`
	ImageURL    string    ``
	TitleImgURL string    ``

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// SeanceSpan carries the earliest and latest scheduled start times for
// one film.
type SeanceSpan struct {
	FilmID   uint
	Earliest time.Time
	Latest   time.Time
}

type FilmDAO struct {
	db *gorm.DB
}

func NewFilmDAO(db *gorm.DB) *FilmDAO {
	return &FilmDAO{
		db: db,
	}
}

func (d *FilmDAO) Insert(ctx context.Context, film Film) (Film, error) {
	result := d.db.WithContext(ctx).Create(&film)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Film{}, ErrFilmExists
		}

		return Film{}, result.Error
	}

	return film, nil
}

func (d *FilmDAO) FindByID(ctx context.Context, id uint) (Film, error) {
	var film Film

	result := d.db.WithContext(ctx).First(&film, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Film{}, ErrFilmNotFound
		}

		return Film{}, result.Error
	}

	return film, nil
}

func (d *FilmDAO) FindAll(ctx context.Context) ([]Film, error) {
	var films []Film

	result := d.db.WithContext(ctx).Order("title").Find(&films)
	if result.Error != nil {
		return nil, result.Error
	}

	return films, nil
}

// SeanceSpans aggregates min/max seance start times per film in one
// query instead of two queries per listed film.
func (d *FilmDAO) SeanceSpans(ctx context.Context) (map[uint]SeanceSpan, error) {
	var spans []SeanceSpan

	result := d.db.WithContext(ctx).
		Model(&Seance{}).
		Select("film_id, MIN(start_time) AS earliest, MAX(start_time) AS latest").
		Group("film_id").
		Scan(&spans)
	if result.Error != nil {
		return nil, result.Error
	}

	byFilm := make(map[uint]SeanceSpan, len(spans))
	for _, span := range spans {
		byFilm[span.FilmID] = span
	}

	return byFilm, nil
}
