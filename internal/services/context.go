package services

import "context"

type contextKey string

const (
	presentationKey contextKey = "presentation"
	slideNoKey      contextKey = "slide_no"
	phaseKey        contextKey = "phase"
	requestIDKey    contextKey = "request_id"
)

// WithPresentation annotates context with the presentation reference.
func WithPresentation(ctx context.Context, ref string) context.Context {
	if ref == "" {
		return ctx
	}
	return context.WithValue(ctx, presentationKey, ref)
}

// PresentationFromContext returns the presentation reference if present.
func PresentationFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(presentationKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSlideNo annotates context with the slide number being processed.
func WithSlideNo(ctx context.Context, no int) context.Context {
	return context.WithValue(ctx, slideNoKey, no)
}

// SlideNoFromContext extracts the slide number if present.
func SlideNoFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(slideNoKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

// WithPhase annotates context with the lifecycle phase (parse or resolve).
func WithPhase(ctx context.Context, phase string) context.Context {
	if phase == "" {
		return ctx
	}
	return context.WithValue(ctx, phaseKey, phase)
}

// PhaseFromContext returns the phase name if present.
func PhaseFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(phaseKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
