package rating

import (
	"strconv"
	"strings"
)

// # Facets

// Facet names one of the two independent attributes of a user's relationship
// to a series.
type Facet string

const (
	FacetRating Facet = "rating"
	FacetState  Facet = "state"
)

// Field is the body key carrying the facet's value.
func (facet Facet) Field() string {
	return string(facet)
}

// Label is the capitalised facet name used in messages.
func (facet Facet) Label() string {
	if facet == FacetState {
		return "State"
	}
	return "Rating"
}

// Other returns the facet sharing the same row.
func (facet Facet) Other() Facet {
	if facet == FacetState {
		return FacetRating
	}
	return FacetState
}

const (
	MinRating = 0
	MaxRating = 5
)

// States are the accepted watch-state labels.
var States = []string{"Langar að horfa", "Er að horfa", "Hef horft"}

// RatingMessage lists the accepted rating values.
func RatingMessage() string {
	values := make([]string, 0, MaxRating-MinRating+1)
	for value := MinRating; value <= MaxRating; value++ {
		values = append(values, strconv.Itoa(value))
	}
	return "Rating must be an integer, one of " + strings.Join(values, ", ")
}

// StateMessage lists the accepted watch-state labels.
func StateMessage() string {
	return "State must be one of " + strings.Join(States, ", ")
}

// # Entities

// Fact is the single row holding a user's rating and watch state for a series.
type Fact struct {
	ID       int     `json:"id"     db:"id"`
	UserID   int     `json:"user"   db:"user_id"`
	SeriesID int     `json:"serie"  db:"series_id"`
	Rating   *int    `json:"rating" db:"rating"`
	State    *string `json:"state"  db:"state"`
}

// Has reports whether facet is set on the row. The service calls it on the
// nil *Fact returned for a missing row, which reports false.
func (fact *Fact) Has(facet Facet) bool {
	if fact == nil {
		return false
	}
	if facet == FacetState {
		return fact.State != nil
	}
	return fact.Rating != nil
}

// Summary aggregates the ratings of a series.
type Summary struct {
	Average *float64 `json:"averageRating"`
	Count   int      `json:"ratingCount"`
}
