package series

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tvcatalog/internal/core/genre"
	"github.com/taibuivan/tvcatalog/internal/core/rating"
	"github.com/taibuivan/tvcatalog/internal/core/season"
	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/assets"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// # Collaborators

type SeasonLister interface {
	ListAll(context context.Context, seriesID int) ([]season.Season, error)
}

type GenreCatalog interface {
	ListBySeries(context context.Context, seriesID int) ([]genre.Genre, error)
	AttachToSeries(context context.Context, seriesID int, values *form.Values) (*genre.Genre, error)
}

type RatingReader interface {
	Summary(context context.Context, seriesID int) (rating.Summary, error)
	Find(context context.Context, userID, seriesID int) (*rating.Fact, error)
}

// ImageUploader turns a spooled upload into a hosted URL.
type ImageUploader interface {
	UploadIfNotUploaded(context context.Context, path string) (string, error)
}

// # Service

type Service struct {
	repo    Repository
	seasons SeasonLister
	genres  GenreCatalog
	ratings RatingReader
	images  ImageUploader
	logger  *slog.Logger
}

func NewService(repo Repository, seasons SeasonLister, genres GenreCatalog, ratings RatingReader, images ImageUploader, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		seasons: seasons,
		genres:  genres,
		ratings: ratings,
		images:  images,
		logger:  logger,
	}
}

func (service *Service) ListSeries(context context.Context, params pagination.Params) (*pagination.Page[Series], error) {
	return service.repo.ListSeries(context, params)
}

func (service *Service) Exists(context context.Context, id int) (bool, error) {
	return service.repo.Exists(context, id)
}

/*
GetSeries assembles the detail view of a series.

Parameters:
  - context: context.Context
  - id: int (series id)
  - userID: int (the caller, 0 when anonymous)

Returns:
  - *Detail: series, genres, seasons, rating summary and the caller's own facets
  - error: NotFound, store failure
*/
func (service *Service) GetSeries(context context.Context, id, userID int) (*Detail, error) {
	series, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Series: *series}

	if detail.Genres, err = service.genres.ListBySeries(context, id); err != nil {
		return nil, err
	}
	if detail.Seasons, err = service.seasons.ListAll(context, id); err != nil {
		return nil, err
	}

	summary, err := service.ratings.Summary(context, id)
	if err != nil {
		return nil, err
	}
	detail.AverageRating = summary.Average
	detail.RatingCount = summary.Count

	if userID > 0 {
		fact, err := service.ratings.Find(context, userID, id)
		if err != nil {
			return nil, err
		}
		if fact != nil {
			detail.Rating = fact.Rating
			detail.State = fact.State
		}
	}

	return detail, nil
}

// image returns the URL to store for the image field: an uploaded file wins
// over a text value. Nil means the field was not supplied.
func (service *Service) image(context context.Context, values *form.Values) (*string, error) {
	file := values.File(FieldImage)
	if file == nil {
		return validate.StringPtr(values.Get(FieldImage)), nil
	}

	url, err := service.images.UploadIfNotUploaded(context, file.Path)
	if err != nil {
		return nil, assets.FieldError(FieldImage, err)
	}
	return &url, nil
}

func (service *Service) CreateSeries(context context.Context, values *form.Values) (*Series, error) {
	failures, err := service.Validate(context, values, validate.Create, 0)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, apperr.Invalid(failures)
	}

	image, err := service.image(context, values)
	if err != nil {
		return nil, err
	}

	name, _ := values.Get(FieldName).String()
	inProduction, _ := validate.ToBool(values.Get(FieldInProduction).Value)

	series, err := service.repo.Create(context, &Series{
		Name:         name,
		AirDate:      validate.DatePtr(values.Get(FieldAirDate)),
		InProduction: inProduction,
		Tagline:      validate.StringPtr(values.Get(FieldTagline)),
		Image:        image,
		Description:  validate.StringPtr(values.Get(FieldDescription)),
		Language:     validate.StringPtr(values.Get(FieldLanguage)),
		Network:      validate.StringPtr(values.Get(FieldNetwork)),
		URL:          validate.StringPtr(values.Get(FieldURL)),
	})
	if err != nil {
		return nil, fmt.Errorf("series: create: %w", err)
	}

	service.logger.InfoContext(context, "series_created",
		slog.Int("series_id", series.ID),
		slog.String("name", series.Name),
	)
	return series, nil
}

/*
UpdateSeries applies the supplied fields of values to the series.

Returns:
  - *Series: the updated row
  - error: NotFound, validation failure, NothingToPatch when no field was supplied
*/
func (service *Service) UpdateSeries(context context.Context, id int, values *form.Values) (*Series, error) {
	if _, err := service.repo.Get(context, id); err != nil {
		return nil, err
	}

	failures, err := service.Validate(context, values, validate.Patch, id)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, apperr.Invalid(failures)
	}

	image, err := service.image(context, values)
	if err != nil {
		return nil, err
	}

	series, err := service.repo.Update(context, id, Patch{
		Name:         validate.StringPtr(values.Get(FieldName)),
		AirDate:      validate.DatePtr(values.Get(FieldAirDate)),
		InProduction: validate.BoolPtr(values.Get(FieldInProduction)),
		Tagline:      validate.StringPtr(values.Get(FieldTagline)),
		Image:        image,
		Description:  validate.StringPtr(values.Get(FieldDescription)),
		Language:     validate.StringPtr(values.Get(FieldLanguage)),
		Network:      validate.StringPtr(values.Get(FieldNetwork)),
		URL:          validate.StringPtr(values.Get(FieldURL)),
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "series_updated", slog.Int("series_id", id))
	return series, nil
}

// DeleteSeries removes a series that has no seasons.
func (service *Service) DeleteSeries(context context.Context, id int) error {
	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	hasSeasons, err := service.repo.HasSeasons(context, id)
	if err != nil {
		return err
	}
	if hasSeasons {
		return apperr.Conflict("Serie is not empty")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "series_deleted", slog.Int("series_id", id))
	return nil
}

func (service *Service) AttachGenre(context context.Context, id int, values *form.Values) (*genre.Genre, error) {
	exists, err := service.repo.Exists(context, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Series")
	}
	return service.genres.AttachToSeries(context, id, values)
}
