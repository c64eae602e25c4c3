package schema

import "github.com/taibuivan/tvcatalog/internal/platform/postgres"

// UserSeriesTable represents the 'users_series' rating/state table
type UserSeriesTable struct {
	Table    string
	ID       string
	UserID   string
	SeriesID string
	Rating   string
	State    string
}

// UserSeries is the schema definition for users_series
var UserSeries = UserSeriesTable{
	Table:    "users_series",
	ID:       "id",
	UserID:   "user_id",
	SeriesID: "series_id",
	Rating:   "rating",
	State:    "state",
}

func (t UserSeriesTable) Columns() []string {
	return []string{t.ID, t.UserID, t.SeriesID, t.Rating, t.State}
}

func (t UserSeriesTable) Target() postgres.Target {
	return postgres.Target{Table: t.Table, Key: t.ID, Columns: t.Columns()}
}
