package episode

import (
	"context"
	"fmt"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

/*
Validate checks an episode payload for the season identified by seasonID.

The episode number must be unique within the season; an episode matching
selfID is not a conflict.

Returns:
  - []apperr.FieldError: failures in check order; empty on success
  - error: store failure during the uniqueness lookup
*/
func (service *Service) Validate(context context.Context, values *form.Values, mode validate.Mode, seasonID, selfID int) ([]apperr.FieldError, error) {
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
			existing, err := service.repo.FindByNumber(context, seasonID, value)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != selfID {
				validator.Add(FieldNumber, fmt.Sprintf("Episode %d already exists in season", value))
			}
		}
	}

	if airDate := values.Get(FieldAirDate); validate.Filled(airDate) {
		validator.Custom(FieldAirDate, !validate.IsDate(airDate.Value), "airDate must be a date in the format YYYY-MM-DD")
	}

	if overview := values.Get(FieldOverview); overview.Supplied() {
		validator.Custom(FieldOverview, !validate.IsString(overview.Value), "Overview must be a string")
	}

	return validator.Errors(), nil
}
