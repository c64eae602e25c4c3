package episode

import "context"

type Repository interface {
	// ListBySeason returns the episodes of a season ordered by number.
	ListBySeason(context context.Context, seasonID int) ([]Episode, error)
	Get(context context.Context, seriesID, season, number int) (*Episode, error)
	// FindByNumber returns nil without error when the season has no such episode.
	FindByNumber(context context.Context, seasonID, number int) (*Episode, error)
	Create(context context.Context, episode *Episode) (*Episode, error)
	Delete(context context.Context, id int) error
}
