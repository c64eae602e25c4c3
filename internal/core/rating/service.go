package rating

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
)

// SeriesChecker confirms a series exists before a fact is recorded against it.
type SeriesChecker interface {
	Exists(context context.Context, id int) (bool, error)
}

// Service decides, per facet, whether a submission inserts a row, fills a
// column on the existing row or is rejected because the facet is already set.
type Service struct {
	repo   Repository
	series SeriesChecker
	logger *slog.Logger
}

func NewService(repo Repository, series SeriesChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		series: series,
		logger: logger,
	}
}

// Find returns the caller's row for the series, or nil.
func (service *Service) Find(context context.Context, userID, seriesID int) (*Fact, error) {
	return service.repo.Find(context, userID, seriesID)
}

func (service *Service) Summary(context context.Context, seriesID int) (Summary, error) {
	return service.repo.Summary(context, seriesID)
}

// Get returns the row when facet is set on it.
func (service *Service) Get(context context.Context, userID, seriesID int, facet Facet) (*Fact, error) {
	fact, err := service.repo.Find(context, userID, seriesID)
	if err != nil {
		return nil, err
	}
	if !fact.Has(facet) {
		return nil, apperr.NotFound(facet.Label())
	}
	return fact, nil
}

/*
Create records facet for the (user, series) pair.

Transitions:
  - no row: insert a row holding only this facet
  - row with the facet unset: fill the column
  - row with the facet set: Conflict "<Facet> already exists"

Returns:
  - *Fact: the stored row
  - error: validation failure, NotFound for an unknown series, Conflict
*/
func (service *Service) Create(context context.Context, userID, seriesID int, facet Facet, values *form.Values) (*Fact, error) {
	failures, value := Validate(facet, values.Get(facet.Field()))
	if len(failures) > 0 {
		return nil, apperr.Invalid(failures)
	}

	exists, err := service.series.Exists(context, seriesID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Series")
	}

	existing, err := service.repo.Find(context, userID, seriesID)
	if err != nil {
		return nil, err
	}

	var fact *Fact
	switch {
	case existing == nil:
		fact, err = service.repo.Insert(context, userID, seriesID, facet, value)
	case existing.Has(facet):
		return nil, apperr.Conflict(facet.Label() + " already exists")
	default:
		fact, err = service.repo.Set(context, existing.ID, facet, value)
	}
	if err != nil {
		return nil, fmt.Errorf("rating: create %s: %w", facet, err)
	}

	service.logger.InfoContext(context, string(facet)+"_created",
		slog.Int("user_id", userID),
		slog.Int("series_id", seriesID),
	)
	return fact, nil
}

// Update replaces facet on the caller's existing row for the series.
func (service *Service) Update(context context.Context, userID, seriesID int, facet Facet, values *form.Values) (*Fact, error) {
	existing, err := service.repo.Find(context, userID, seriesID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound(facet.Label())
	}

	field := values.Get(facet.Field())
	if !field.Supplied() {
		return nil, apperr.NothingToPatch()
	}

	failures, value := Validate(facet, field)
	if len(failures) > 0 {
		return nil, apperr.Invalid(failures)
	}

	fact, err := service.repo.Set(context, existing.ID, facet, value)
	if err != nil {
		return nil, fmt.Errorf("rating: update %s: %w", facet, err)
	}

	service.logger.InfoContext(context, string(facet)+"_updated",
		slog.Int("user_id", userID),
		slog.Int("series_id", seriesID),
	)
	return fact, nil
}

// Delete clears facet. The row survives while the other facet is still set and
// is removed otherwise.
func (service *Service) Delete(context context.Context, userID, seriesID int, facet Facet) error {
	existing, err := service.repo.Find(context, userID, seriesID)
	if err != nil {
		return err
	}
	if !existing.Has(facet) {
		return apperr.NotFound(facet.Label())
	}

	if existing.Has(facet.Other()) {
		_, err = service.repo.Clear(context, existing.ID, facet)
	} else {
		err = service.repo.Delete(context, existing.ID)
	}
	if err != nil {
		return fmt.Errorf("rating: delete %s: %w", facet, err)
	}

	service.logger.InfoContext(context, string(facet)+"_deleted",
		slog.Int("user_id", userID),
		slog.Int("series_id", seriesID),
	)
	return nil
}
