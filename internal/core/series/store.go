package series

import (
	"context"

	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

type Repository interface {
	ListSeries(context context.Context, params pagination.Params) (*pagination.Page[Series], error)
	Get(context context.Context, id int) (*Series, error)
	// FindByName returns nil without error when no series has that name.
	FindByName(context context.Context, name string) (*Series, error)
	Create(context context.Context, series *Series) (*Series, error)
	// Update writes only the non-nil fields of patch.
	Update(context context.Context, id int, patch Patch) (*Series, error)
	Exists(context context.Context, id int) (bool, error)
	HasSeasons(context context.Context, id int) (bool, error)
	// Delete removes the series and its genre associations atomically.
	Delete(context context.Context, id int) error
}
