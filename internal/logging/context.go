package logging

import (
	"context"
	"log/slog"

	"baldr/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldPresentation is the standardized key for presentation references.
	FieldPresentation = "presentation"
	// FieldSlideNo is the standardized key for 1-based slide numbers.
	FieldSlideNo = "slide_no"
	// FieldPhase is the standardized key for the lifecycle phase (parse, resolve).
	FieldPhase = "phase"
	// FieldURI is the standardized key for media URIs.
	FieldURI = "uri"
	// FieldMaster is the standardized key for master slide names.
	FieldMaster = "master"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries a short next-step suggestion for operators.
	FieldErrorHint = "error_hint"
	// FieldElapsed is the standardized key for operation durations. JSON
	// output renders it as elapsed_ms.
	FieldElapsed = "elapsed"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if ref, ok := services.PresentationFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldPresentation, ref))
	}
	if no, ok := services.SlideNoFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldSlideNo, no))
	}
	if phase, ok := services.PhaseFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldPhase, phase))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// missingFrom returns the context fields whose keys are not yet taken.
func missingFrom(ctx context.Context, taken func(key string) bool) []slog.Attr {
	fields := ContextFields(ctx)
	out := fields[:0]
	for _, field := range fields {
		if !taken(field.Key) {
			out = append(out, field)
		}
	}
	return out
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
