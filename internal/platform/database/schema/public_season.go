package schema

// SeasonTable represents the 'seasons' table
type SeasonTable struct {
	Table    string
	ID       string
	Name     string
	Number   string
	AirDate  string
	Overview string
	Poster   string
	SeriesID string
}

// Season is the schema definition for seasons
var Season = SeasonTable{
	Table:    "seasons",
	ID:       "id",
	Name:     "name",
	Number:   "number",
	AirDate:  "air_date",
	Overview: "overview",
	Poster:   "poster",
	SeriesID: "series_id",
}

func (t SeasonTable) Columns() []string {
	return []string{t.ID, t.Name, t.Number, t.AirDate, t.Overview, t.Poster, t.SeriesID}
}
