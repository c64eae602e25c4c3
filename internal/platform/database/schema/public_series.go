package schema

import "github.com/taibuivan/tvcatalog/internal/platform/postgres"

// SeriesTable represents the 'series' table
type SeriesTable struct {
	Table        string
	ID           string
	Name         string
	AirDate      string
	InProduction string
	Tagline      string
	Image        string
	Description  string
	Language     string
	Network      string
	URL          string
}

// Series is the schema definition for series
var Series = SeriesTable{
	Table:        "series",
	ID:           "id",
	Name:         "name",
	AirDate:      "air_date",
	InProduction: "in_production",
	Tagline:      "tagline",
	Image:        "image",
	Description:  "description",
	Language:     "language",
	Network:      "network",
	URL:          "url",
}

func (t SeriesTable) Columns() []string {
	return []string{t.ID, t.Name, t.AirDate, t.InProduction, t.Tagline, t.Image, t.Description, t.Language, t.Network, t.URL}
}

func (t SeriesTable) Target() postgres.Target {
	return postgres.Target{Table: t.Table, Key: t.ID, Columns: t.Columns()}
}
