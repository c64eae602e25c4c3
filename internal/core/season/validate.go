package season

import (
	"context"
	"fmt"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/assets"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

/*
Validate checks a season payload for the series identified by seriesID.

Rules:
  - name: required, non-empty, at most 255 characters
  - number: required positive integer, unique within the series (selfID excepted)
  - airDate: optional date
  - overview: optional string
  - poster: an attached file must be a jpeg, png or gif image; a text value must be a URL
    of at most 255 characters

Returns:
  - []apperr.FieldError: failures in check order; empty on success
  - error: store failure or unreadable upload
*/
func (service *Service) Validate(context context.Context, values *form.Values, mode validate.Mode, seriesID, selfID int) ([]apperr.FieldError, error) {
	validator := &validate.Validator{}

	name := values.Get(FieldName)
	if mode.Checks(name) {
		validator.Custom(FieldName, !validate.IsNonEmptyString(name.Value, 1, MaxNameLength),
			"Name is required and must not be empty and no longer than 255 characters")
	}

	number := values.Get(FieldNumber)
	if mode.Checks(number) {
		if !validate.IsPositiveInt(number.Value) {
			validator.Add(FieldNumber, "Number must be a positive integer")
		} else {
			value, _ := validate.ToInt(number.Value)
			existing, err := service.repo.Get(context, seriesID, value)
			if err != nil && !apperr.IsNotFound(err) {
				return nil, err
			}
			if existing != nil && existing.ID != selfID {
				validator.Add(FieldNumber, fmt.Sprintf("Season %d already exists", value))
			}
		}
	}

	if airDate := values.Get(FieldAirDate); validate.Filled(airDate) {
		validator.Custom(FieldAirDate, !validate.IsDate(airDate.Value), "airDate must be a date in the format YYYY-MM-DD")
	}

	if overview := values.Get(FieldOverview); overview.Supplied() {
		validator.Custom(FieldOverview, !validate.IsString(overview.Value), "Overview must be a string")
	}

	if file := values.File(FieldPoster); file != nil {
		if err := assets.ValidateAttachment(validator, FieldPoster, file); err != nil {
			return nil, err
		}
	} else if poster := values.Get(FieldPoster); validate.Filled(poster) {
		switch {
		case !validate.IsURL(poster.Value):
			validator.Add(FieldPoster, "Poster must be a URL to an image")
		case validate.TooLong(poster.Value, MaxPosterLength):
			validator.Add(FieldPoster, validate.MaxLengthMessage("Poster", poster.Value, MaxPosterLength))
		}
	}

	return validator.Errors(), nil
}
