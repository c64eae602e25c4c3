package genre

import (
	"context"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

/*
Validate checks a genre payload.

The name must be a non-empty string of at most 255 characters that no other
genre uses; a genre matching selfID is not a conflict.
*/
func (service *Service) Validate(context context.Context, values *form.Values, mode validate.Mode, selfID int) ([]apperr.FieldError, error) {
	validator := &validate.Validator{}

	name := values.Get(FieldName)
	if mode.Checks(name) {
		validator.Custom(FieldName, !validate.IsNonEmptyString(name.Value, 1, MaxNameLength),
			"Name is required, must not be empty or longer than 255 characters")

		if value, ok := name.String(); ok && value != "" {
			existing, err := service.repo.FindByName(context, value)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != selfID {
				validator.Add(FieldName, "Genre already exists")
			}
		}
	}

	return validator.Errors(), nil
}
