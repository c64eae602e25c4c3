package episode

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

// SeasonResolver maps (series, season number) to the season's id, returning
// NotFound when the series has no such season.
type SeasonResolver interface {
	ResolveSeasonID(context context.Context, seriesID, number int) (int, error)
}

type Service struct {
	repo    Repository
	seasons SeasonResolver
	logger  *slog.Logger
}

func NewService(repo Repository, seasons SeasonResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		seasons: seasons,
		logger:  logger,
	}
}

// ListBySeason never returns a nil slice.
func (service *Service) ListBySeason(context context.Context, seasonID int) ([]Episode, error) {
	episodes, err := service.repo.ListBySeason(context, seasonID)
	if err != nil {
		return nil, err
	}
	if episodes == nil {
		episodes = []Episode{}
	}
	return episodes, nil
}

func (service *Service) GetEpisode(context context.Context, seriesID, season, number int) (*Episode, error) {
	return service.repo.Get(context, seriesID, season, number)
}

/*
CreateEpisode adds an episode to season number season of the series.

Returns:
  - *Episode: the stored episode
  - error: NotFound for an unknown season, validation failure, store failure
*/
func (service *Service) CreateEpisode(context context.Context, seriesID, season int, values *form.Values) (*Episode, error) {
	seasonID, err := service.seasons.ResolveSeasonID(context, seriesID, season)
	if err != nil {
		return nil, err
	}

	failures, err := service.Validate(context, values, validate.Create, seasonID, 0)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, apperr.Invalid(failures)
	}

	name, _ := values.Get(FieldName).String()
	number, _ := validate.ToInt(values.Get(FieldNumber).Value)

	episode, err := service.repo.Create(context, &Episode{
		Name:     name,
		Number:   number,
		AirDate:  validate.DatePtr(values.Get(FieldAirDate)),
		Overview: validate.StringPtr(values.Get(FieldOverview)),
		Season:   season,
		SeriesID: seriesID,
		SeasonID: seasonID,
	})
	if err != nil {
		return nil, fmt.Errorf("episode: create: %w", err)
	}

	service.logger.InfoContext(context, "episode_created",
		slog.Int("episode_id", episode.ID),
		slog.Int("series_id", seriesID),
		slog.Int("season", season),
		slog.Int("number", episode.Number),
	)
	return episode, nil
}

func (service *Service) DeleteEpisode(context context.Context, seriesID, season, number int) error {
	episode, err := service.repo.Get(context, seriesID, season, number)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, episode.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "episode_deleted",
		slog.Int("episode_id", episode.ID),
		slog.Int("series_id", seriesID),
	)
	return nil
}
