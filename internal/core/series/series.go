package series

import (
	"time"

	"github.com/taibuivan/tvcatalog/internal/core/genre"
	"github.com/taibuivan/tvcatalog/internal/core/season"
)

// Series is a TV series. Names are unique.
type Series struct {
	ID           int        `json:"id"           db:"id"`
	Name         string     `json:"name"         db:"name"`
	AirDate      *time.Time `json:"airDate"      db:"air_date"`
	InProduction bool       `json:"inProduction" db:"in_production"`
	Tagline      *string    `json:"tagline"      db:"tagline"`
	Image        *string    `json:"image"        db:"image"`
	Description  *string    `json:"description"  db:"description"`
	Language     *string    `json:"language"     db:"language"`
	Network      *string    `json:"network"      db:"network"`
	URL          *string    `json:"url"          db:"url"`
}

// Detail is a series with its genres, its seasons ordered by number and its
// rating summary. Rating and State are the caller's own facets, when signed in.
type Detail struct {
	Series
	Genres        []genre.Genre   `json:"genres"`
	Seasons       []season.Season `json:"seasons"`
	AverageRating *float64        `json:"averageRating"`
	RatingCount   int             `json:"ratingCount"`
	Rating        *int            `json:"rating,omitempty"`
	State         *string         `json:"state,omitempty"`
}

// Patch holds the supplied fields of a partial update. Nil means "leave as is".
type Patch struct {
	Name         *string
	AirDate      *time.Time
	InProduction *bool
	Tagline      *string
	Image        *string
	Description  *string
	Language     *string
	Network      *string
	URL          *string
}

const (
	FieldName         = "name"
	FieldAirDate      = "airDate"
	FieldInProduction = "inProduction"
	FieldTagline      = "tagline"
	FieldImage        = "image"
	FieldDescription  = "description"
	FieldLanguage     = "language"
	FieldNetwork      = "network"
	FieldURL          = "url"
)

const MaxNameLength = 255

// MaxTextLength bounds the VARCHAR(255) columns network, url and image.
const MaxTextLength = 255
