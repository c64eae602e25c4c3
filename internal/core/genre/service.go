package genre

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(context context.Context, params pagination.Params) (*pagination.Page[Genre], error) {
	return service.repo.ListGenres(context, params)
}

func (service *Service) ListBySeries(context context.Context, seriesID int) ([]Genre, error) {
	genres, err := service.repo.ListBySeries(context, seriesID)
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []Genre{}
	}
	return genres, nil
}

func (service *Service) CreateGenre(context context.Context, values *form.Values) (*Genre, error) {
	failures, err := service.Validate(context, values, validate.Create, 0)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, apperr.Invalid(failures)
	}

	name, _ := values.Get(FieldName).String()
	genre, err := service.repo.CreateGenre(context, name)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "genre_created",
		slog.Int("genre_id", genre.ID),
		slog.String("name", genre.Name),
	)
	return genre, nil
}

/*
AttachToSeries files the series under the genre named by the "genre" id field.

The caller is responsible for checking that the series exists.

Returns:
  - *Genre: the attached genre
  - error: validation failure, NotFound for an unknown genre, Conflict when already attached
*/
func (service *Service) AttachToSeries(context context.Context, seriesID int, values *form.Values) (*Genre, error) {
	field := values.Get(FieldGenre)

	validator := &validate.Validator{}
	validator.PositiveInt(FieldGenre, field.Value)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	genreID, _ := validate.ToInt(field.Value)
	genre, err := service.repo.GetGenre(context, genreID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.AttachToSeries(context, seriesID, genreID); err != nil {
		return nil, fmt.Errorf("genre: attach %d to series %d: %w", genreID, seriesID, err)
	}

	service.logger.InfoContext(context, "genre_attached",
		slog.Int("series_id", seriesID),
		slog.Int("genre_id", genreID),
	)
	return genre, nil
}
