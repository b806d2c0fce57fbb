package master

import (
	"fmt"

	"baldr/internal/services"
)

// UnknownMasterError reports a slide whose master could not be determined.
type UnknownMasterError struct {
	SlideNo int
	Name    string
	Reason  string
}

func (e *UnknownMasterError) Error() string {
	prefix := ""
	if e.SlideNo > 0 {
		prefix = fmt.Sprintf("slide %d: ", e.SlideNo)
	}
	if e.Name != "" {
		return fmt.Sprintf("%sunknown master %q", prefix, e.Name)
	}
	return prefix + e.Reason
}

func (e *UnknownMasterError) Unwrap() error { return services.ErrValidation }

// UnknownFieldError reports a field not declared by the master.
type UnknownFieldError struct {
	SlideNo int
	Master  string
	Field   string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("slide %d: the master slide %q has no field named %q", e.SlideNo, e.Master, e.Field)
}

func (e *UnknownFieldError) Unwrap() error { return services.ErrValidation }

// MissingFieldError reports a required field that is absent after normalization.
type MissingFieldError struct {
	SlideNo int
	Master  string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("slide %d: a field named %q is mandatory for the master slide %q", e.SlideNo, e.Field, e.Master)
}

func (e *MissingFieldError) Unwrap() error { return services.ErrValidation }

// InvalidFieldsError reports slide input of the wrong shape or type. Err is
// the cause reported by a master hook, if any; it stays reachable through
// errors.Is and errors.As next to ErrValidation.
type InvalidFieldsError struct {
	SlideNo int
	Master  string
	Field   string
	Reason  string
	Err     error
}

func (e *InvalidFieldsError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("slide %d: master %q field %q: %s", e.SlideNo, e.Master, e.Field, e.Reason)
	}
	return fmt.Sprintf("slide %d: master %q: %s", e.SlideNo, e.Master, e.Reason)
}

func (e *InvalidFieldsError) Unwrap() []error {
	if e.Err == nil {
		return []error{services.ErrValidation}
	}
	return []error{e.Err, services.ErrValidation}
}
