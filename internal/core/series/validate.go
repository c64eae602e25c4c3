package series

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/assets"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
)

// optionalText are the free-text fields. A zero max means unbounded.
var optionalText = []struct {
	field string
	label string
	max   int
}{
	{FieldTagline, "Tagline", 0},
	{FieldDescription, "Description", 0},
	{FieldNetwork, "Network", MaxTextLength},
	{FieldURL, "url", MaxTextLength},
}

/*
Validate checks a series payload.

In create mode name and inProduction are required. Every other field is only
checked when supplied. A name already used by another series fails; the series
identified by selfID may keep its own name.

Returns:
  - []apperr.FieldError: failures in check order; empty on success
  - error: store failure or unreadable upload
*/
func (service *Service) Validate(context context.Context, values *form.Values, mode validate.Mode, selfID int) ([]apperr.FieldError, error) {
	validator := &validate.Validator{}

	name := values.Get(FieldName)
	if mode.Checks(name) {
		validator.Custom(FieldName, !validate.IsNonEmptyString(name.Value, 1, MaxNameLength),
			"Name is required and must not be empty and no longer than 255 characters")

		if value, ok := name.String(); ok && value != "" {
			existing, err := service.repo.FindByName(context, value)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != selfID {
				validator.Add(FieldName, fmt.Sprintf("Series %q already exists", value))
			}
		}
	}

	if airDate := values.Get(FieldAirDate); validate.Filled(airDate) {
		validator.Custom(FieldAirDate, !validate.IsDate(airDate.Value), "airDate must be a date in the format YYYY-MM-DD")
	}

	if lang := values.Get(FieldLanguage); lang.Supplied() {
		validateLanguage(validator, lang)
	}

	if inProduction := values.Get(FieldInProduction); mode.Checks(inProduction) {
		validator.Custom(FieldInProduction, !validate.IsBool(inProduction.Value), "inProduction must be of type boolean")
	}

	for _, text := range optionalText {
		field := values.Get(text.field)
		switch {
		case !field.Supplied():
		case !validate.IsString(field.Value):
			validator.Add(text.field, text.label+" must be a string")
		case text.max > 0 && validate.TooLong(field.Value, text.max):
			validator.Add(text.field, validate.MaxLengthMessage(text.label, field.Value, text.max))
		}
	}

	if file := values.File(FieldImage); file != nil {
		if err := assets.ValidateAttachment(validator, FieldImage, file); err != nil {
			return nil, err
		}
	} else if image := values.Get(FieldImage); validate.Filled(image) {
		switch {
		case !validate.IsURL(image.Value):
			validator.Add(FieldImage, "Image must be a path to an image")
		case validate.TooLong(image.Value, MaxTextLength):
			validator.Add(FieldImage, validate.MaxLengthMessage("Image", image.Value, MaxTextLength))
		}
	}

	return validator.Errors(), nil
}

// validateLanguage accepts "" or a known two letter ISO 639-1 code.
func validateLanguage(validator *validate.Validator, field form.Field) {
	value, ok := field.String()
	if !ok || (len(value) != 0 && len(value) != 2) {
		validator.Add(FieldLanguage, "Language must be a string of length 2")
		return
	}
	if value == "" {
		return
	}
	if _, err := language.ParseBase(value); err != nil {
		validator.Add(FieldLanguage, fmt.Sprintf("Language %q is not a known ISO 639-1 code", value))
	}
}
