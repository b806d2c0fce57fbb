package presentation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"baldr/internal/mediauri"
	"baldr/internal/services"
)

// Meta describes a presentation.
type Meta struct {
	Ref           string `yaml:"ref" json:"ref" validate:"required,authority"`
	UUID          string `yaml:"uuid,omitempty" json:"uuid,omitempty" validate:"omitempty,uuid"`
	Title         string `yaml:"title" json:"title" validate:"required"`
	Subtitle      string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Subject       string `yaml:"subject,omitempty" json:"subject,omitempty"`
	Grade         int    `yaml:"grade" json:"grade" validate:"required,min=1,max=13"`
	Curriculum    string `yaml:"curriculum,omitempty" json:"curriculum,omitempty"`
	CurriculumURL string `yaml:"curriculumUrl,omitempty" json:"curriculumUrl,omitempty" validate:"omitempty,url"`
	Path          string `yaml:"path,omitempty" json:"path,omitempty"`
}

var (
	metaValidateOnce sync.Once
	metaValidate     *validator.Validate
)

func metaValidator() *validator.Validate {
	metaValidateOnce.Do(func() {
		metaValidate = validator.New(validator.WithRequiredStructEnabled())
		_ = metaValidate.RegisterValidation("authority", func(fl validator.FieldLevel) bool {
			return mediauri.Check(mediauri.SchemeRef + ":" + fl.Field().String())
		})
	})
	return metaValidate
}

// Validate checks the required meta fields.
func (m Meta) Validate() error {
	err := metaValidator().Struct(m)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return services.Wrap(services.ErrValidation, "parse", "meta", "invalid meta", err)
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", lowerFirst(fe.Field())))
		case "min", "max":
			parts = append(parts, fmt.Sprintf("%s must be between 1 and 13", lowerFirst(fe.Field())))
		default:
			parts = append(parts, fmt.Sprintf("%s is not a valid %s", lowerFirst(fe.Field()), fe.Tag()))
		}
	}
	return services.Wrap(services.ErrValidation, "parse", "meta", strings.Join(parts, ", "), nil)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ParentDir returns the directory part of Path, e.g.
// `12/20_Tradition/10_Futurismus` for `12/20_Tradition/10_Futurismus/Praesentation.baldr.yml`.
func (m Meta) ParentDir() string {
	if m.Path == "" {
		return ""
	}
	idx := strings.LastIndex(m.Path, "/")
	if idx < 0 {
		return ""
	}
	return m.Path[:idx]
}
