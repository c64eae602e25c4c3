package rating

import (
	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

/*
Validate checks the value submitted for facet.

A rating must be an integer between [MinRating] and [MaxRating]; a state must
be one of [States]. An absent value fails like any other invalid one.

Returns:
  - []apperr.FieldError: failures in check order; empty on success
  - any: the value to store (int or string), nil on failure
*/
func Validate(facet Facet, field form.Field) ([]apperr.FieldError, any) {
	validator := &validate.Validator{}

	switch facet {
	case FacetState:
		if validate.IsOneOf(field.Value, States...) {
			state, _ := field.String()
			return validator.Errors(), state
		}
		validator.Add(facet.Field(), StateMessage())

	default:
		value, ok := validate.ToInt(field.Value)
		if ok && value >= MinRating && value <= MaxRating {
			return validator.Errors(), value
		}
		validator.Add(facet.Field(), RatingMessage())
	}

	return validator.Errors(), nil
}
