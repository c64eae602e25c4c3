package season

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tvcatalog/internal/core/episode"
	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/assets"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// SeriesChecker confirms the owning series exists.
type SeriesChecker interface {
	Exists(context context.Context, id int) (bool, error)
}

// EpisodeLister lists the episodes shown with a season.
type EpisodeLister interface {
	ListBySeason(context context.Context, seasonID int) ([]episode.Episode, error)
}

// ImageUploader turns a spooled upload into a hosted URL.
type ImageUploader interface {
	UploadIfNotUploaded(context context.Context, path string) (string, error)
}

type Service struct {
	repo     Repository
	series   SeriesChecker
	episodes EpisodeLister
	images   ImageUploader
	logger   *slog.Logger
}

func NewService(repo Repository, series SeriesChecker, episodes EpisodeLister, images ImageUploader, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		series:   series,
		episodes: episodes,
		images:   images,
		logger:   logger,
	}
}

func (service *Service) requireSeries(context context.Context, seriesID int) error {
	exists, err := service.series.Exists(context, seriesID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Series")
	}
	return nil
}

func (service *Service) ListSeasons(context context.Context, seriesID int, params pagination.Params) (*pagination.Page[Season], error) {
	if err := service.requireSeries(context, seriesID); err != nil {
		return nil, err
	}
	return service.repo.ListSeasons(context, seriesID, params)
}

// ListAll returns every season of the series. It never returns a nil slice.
func (service *Service) ListAll(context context.Context, seriesID int) ([]Season, error) {
	seasons, err := service.repo.ListAll(context, seriesID)
	if err != nil {
		return nil, err
	}
	if seasons == nil {
		seasons = []Season{}
	}
	return seasons, nil
}

// ResolveSeasonID returns the id of season number of the series.
func (service *Service) ResolveSeasonID(context context.Context, seriesID, number int) (int, error) {
	season, err := service.repo.Get(context, seriesID, number)
	if err != nil {
		return 0, err
	}
	return season.ID, nil
}

func (service *Service) GetSeason(context context.Context, seriesID, number int) (*Detail, error) {
	season, err := service.repo.Get(context, seriesID, number)
	if err != nil {
		return nil, err
	}

	episodes, err := service.episodes.ListBySeason(context, season.ID)
	if err != nil {
		return nil, err
	}
	if episodes == nil {
		episodes = []episode.Episode{}
	}

	return &Detail{Season: *season, Episodes: episodes}, nil
}

/*
CreateSeason validates the payload, uploads an attached poster and stores the season.

Returns:
  - *Season: the stored season
  - error: NotFound for an unknown series, validation failure (including a poster
    refused by the image host), store failure
*/
func (service *Service) CreateSeason(context context.Context, seriesID int, values *form.Values) (*Season, error) {
	if err := service.requireSeries(context, seriesID); err != nil {
		return nil, err
	}

	failures, err := service.Validate(context, values, validate.Create, seriesID, 0)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, apperr.Invalid(failures)
	}

	poster := validate.StringPtr(values.Get(FieldPoster))
	if file := values.File(FieldPoster); file != nil {
		url, err := service.images.UploadIfNotUploaded(context, file.Path)
		if err != nil {
			return nil, assets.FieldError(FieldPoster, err)
		}
		poster = &url
	}

	name, _ := values.Get(FieldName).String()
	number, _ := validate.ToInt(values.Get(FieldNumber).Value)

	season, err := service.repo.Create(context, &Season{
		Name:     name,
		Number:   number,
		AirDate:  validate.DatePtr(values.Get(FieldAirDate)),
		Overview: validate.StringPtr(values.Get(FieldOverview)),
		Poster:   poster,
		SeriesID: seriesID,
	})
	if err != nil {
		return nil, fmt.Errorf("season: create: %w", err)
	}

	service.logger.InfoContext(context, "season_created",
		slog.Int("season_id", season.ID),
		slog.Int("series_id", seriesID),
		slog.Int("number", season.Number),
	)
	return season, nil
}

// DeleteSeason removes an empty season. A season with episodes is a Conflict.
func (service *Service) DeleteSeason(context context.Context, seriesID, number int) error {
	season, err := service.repo.Get(context, seriesID, number)
	if err != nil {
		return err
	}

	hasEpisodes, err := service.repo.HasEpisodes(context, season.ID)
	if err != nil {
		return err
	}
	if hasEpisodes {
		return apperr.Conflict("Season is not empty")
	}

	if err := service.repo.Delete(context, season.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "season_deleted",
		slog.Int("season_id", season.ID),
		slog.Int("series_id", seriesID),
	)
	return nil
}
