package genre

import (
	"context"

	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

type Repository interface {
	ListGenres(context context.Context, params pagination.Params) (*pagination.Page[Genre], error)
	GetGenre(context context.Context, id int) (*Genre, error)
	// FindByName returns nil without error when no genre has that name.
	FindByName(context context.Context, name string) (*Genre, error)
	CreateGenre(context context.Context, name string) (*Genre, error)

	ListBySeries(context context.Context, seriesID int) ([]Genre, error)
	AttachToSeries(context context.Context, seriesID, genreID int) error
}
