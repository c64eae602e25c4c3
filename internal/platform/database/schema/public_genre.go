package schema

// GenreTable represents the 'genres' table
type GenreTable struct {
	Table string
	ID    string
	Name  string
}

// Genre is the schema definition for genres
var Genre = GenreTable{
	Table: "genres",
	ID:    "id",
	Name:  "name",
}

func (t GenreTable) Columns() []string {
	return []string{t.ID, t.Name}
}

// SeriesGenreTable represents the 'serie_genre' association table
type SeriesGenreTable struct {
	Table    string
	SeriesID string
	GenreID  string
}

// SeriesGenre is the schema definition for serie_genre
var SeriesGenre = SeriesGenreTable{
	Table:    "serie_genre",
	SeriesID: "series_id",
	GenreID:  "genre_id",
}
