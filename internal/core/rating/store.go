package rating

import "context"

type Repository interface {
	// Find returns nil without error when the user has no row for the series.
	Find(context context.Context, userID, seriesID int) (*Fact, error)

	// Insert creates the row with only facet set. A concurrent insert for the same
	// pair surfaces as a Conflict.
	Insert(context context.Context, userID, seriesID int, facet Facet, value any) (*Fact, error)

	// Set assigns facet on an existing row.
	Set(context context.Context, factID int, facet Facet, value any) (*Fact, error)

	// Clear nulls facet on an existing row.
	Clear(context context.Context, factID int, facet Facet) (*Fact, error)

	Delete(context context.Context, factID int) error

	Summary(context context.Context, seriesID int) (Summary, error)
}
