package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

const jsonTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// jsonHandler wraps slog's JSON handler so lines emitted with a bare context
// still carry the presentation, slide number, phase and correlation ID found
// on that context. Explicit attributes always win over context values.
type jsonHandler struct {
	inner slog.Handler
	// bound holds top-level keys attached through WithAttrs.
	bound map[string]struct{}
	// grouped is set once WithGroup was called; promoted fields would land in
	// the group, so promotion stops there.
	grouped bool
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) (slog.Handler, error) {
	opts := slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	}
	return &jsonHandler{inner: slog.NewJSONHandler(w, &opts)}, nil
}

func replaceJSONAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(jsonTimestampLayout))
		}
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	case FieldSlideNo:
		// Slide numbers stay numeric even when callers pass them as strings.
		if attr.Value.Kind() == slog.KindString {
			var n int
			if _, err := fmt.Sscanf(attr.Value.String(), "%d", &n); err == nil {
				attr.Value = slog.IntValue(n)
			}
		}
	case FieldElapsed:
		if attr.Value.Kind() == slog.KindDuration {
			attr.Value = slog.Int64Value(attr.Value.Duration().Milliseconds())
			attr.Key = FieldElapsed + "_ms"
		}
	}
	return attr
}

func (h *jsonHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *jsonHandler) Handle(ctx context.Context, record slog.Record) error {
	if !h.grouped {
		if missing := h.missingContextFields(ctx, record); len(missing) > 0 {
			record = record.Clone()
			record.AddAttrs(missing...)
		}
	}
	if record.Time.IsZero() {
		record.Time = time.Now()
	}
	return h.inner.Handle(ctx, record)
}

func (h *jsonHandler) missingContextFields(ctx context.Context, record slog.Record) []slog.Attr {
	present := make(map[string]struct{}, record.NumAttrs())
	record.Attrs(func(attr slog.Attr) bool {
		present[attr.Key] = struct{}{}
		return true
	})
	return missingFrom(ctx, func(key string) bool {
		if _, ok := h.bound[key]; ok {
			return true
		}
		_, ok := present[key]
		return ok
	})
}

func (h *jsonHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &jsonHandler{inner: h.inner.WithAttrs(attrs), grouped: h.grouped}
	clone.bound = make(map[string]struct{}, len(h.bound)+len(attrs))
	for key := range h.bound {
		clone.bound[key] = struct{}{}
	}
	if !h.grouped {
		for _, attr := range attrs {
			clone.bound[attr.Key] = struct{}{}
		}
	}
	return clone
}

func (h *jsonHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &jsonHandler{inner: h.inner.WithGroup(name), bound: h.bound, grouped: true}
}
