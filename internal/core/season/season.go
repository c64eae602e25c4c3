package season

import (
	"time"

	"github.com/taibuivan/tvcatalog/internal/core/episode"
)

// Season is a numbered season of a series. Numbers are unique per series.
type Season struct {
	ID       int        `json:"id"       db:"id"`
	Name     string     `json:"name"     db:"name"`
	Number   int        `json:"number"   db:"number"`
	AirDate  *time.Time `json:"airDate"  db:"air_date"`
	Overview *string    `json:"overview" db:"overview"`
	Poster   *string    `json:"poster"   db:"poster"`
	SeriesID int        `json:"serie"    db:"series_id"`
}

// Detail is a season together with its episodes ordered by number.
type Detail struct {
	Season
	Episodes []episode.Episode `json:"episodes"`
}

const (
	FieldName     = "name"
	FieldNumber   = "number"
	FieldAirDate  = "airDate"
	FieldOverview = "overview"
	FieldPoster   = "poster"
)

const MaxNameLength = 255

// MaxPosterLength bounds the VARCHAR(255) poster column.
const MaxPosterLength = 255
