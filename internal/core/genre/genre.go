package genre

// Genre is a category a series can be filed under.
type Genre struct {
	ID   int    `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

const (
	FieldName  = "name"
	FieldGenre = "genre"
)

// MaxNameLength bounds genre names.
const MaxNameLength = 255
