package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"baldr/internal/media"
	"baldr/internal/mediauri"
	"baldr/internal/services"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("authority", func(fl validator.FieldLevel) bool {
			return mediauri.Check(mediauri.SchemeRef + ":" + mediauri.RemoveScheme(fl.Field().String()))
		})
	})
	return validate
}

// ValidateRecord checks the identifying fields of a record. Refs and uuids may
// carry their scheme prefix.
func ValidateRecord(rec *media.Record) error {
	if rec == nil {
		return services.Wrap(services.ErrValidation, "catalog", "validate record", "record is nil", nil)
	}
	probe := *rec
	probe.UUID = mediauri.RemoveScheme(rec.UUID)
	if err := recordValidator().Struct(&probe); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			parts := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				parts = append(parts, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return services.Wrap(services.ErrValidation, "catalog", "validate record",
				fmt.Sprintf("record %q: %s", rec.Ref, strings.Join(parts, ", ")), nil)
		}
		return services.Wrap(services.ErrValidation, "catalog", "validate record", "invalid record", err)
	}
	return nil
}
