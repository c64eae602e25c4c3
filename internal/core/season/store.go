package season

import (
	"context"

	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

type Repository interface {
	// ListSeasons returns one window of the series' seasons ordered by number.
	ListSeasons(context context.Context, seriesID int, params pagination.Params) (*pagination.Page[Season], error)
	// ListAll returns every season of the series ordered by number.
	ListAll(context context.Context, seriesID int) ([]Season, error)
	Get(context context.Context, seriesID, number int) (*Season, error)
	Create(context context.Context, season *Season) (*Season, error)
	HasEpisodes(context context.Context, seasonID int) (bool, error)
	Delete(context context.Context, id int) error
}
