package episode

import "time"

// Episode belongs to one season of one series. The season id is resolved from
// (series, season number) when the episode is created.
type Episode struct {
	ID       int        `json:"id"       db:"id"`
	Name     string     `json:"name"     db:"name"`
	Number   int        `json:"number"   db:"number"`
	AirDate  *time.Time `json:"airDate"  db:"air_date"`
	Overview *string    `json:"overview" db:"overview"`
	Season   int        `json:"season"   db:"season_number"`
	SeriesID int        `json:"serie"    db:"series_id"`
	SeasonID int        `json:"seasonId" db:"season_id"`
}

const (
	FieldName     = "name"
	FieldNumber   = "number"
	FieldAirDate  = "airDate"
	FieldOverview = "overview"
)

const MaxNameLength = 255
