package schema

// EpisodeTable represents the 'episodes' table
type EpisodeTable struct {
	Table        string
	ID           string
	Name         string
	Number       string
	AirDate      string
	Overview     string
	SeasonNumber string
	SeriesID     string
	SeasonID     string
}

// Episode is the schema definition for episodes
var Episode = EpisodeTable{
	Table:        "episodes",
	ID:           "id",
	Name:         "name",
	Number:       "number",
	AirDate:      "air_date",
	Overview:     "overview",
	SeasonNumber: "season_number",
	SeriesID:     "series_id",
	SeasonID:     "season_id",
}

func (t EpisodeTable) Columns() []string {
	return []string{t.ID, t.Name, t.Number, t.AirDate, t.Overview, t.SeasonNumber, t.SeriesID, t.SeasonID}
}
