package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const consoleTimestampLayout = "15:04:05.000"

// consoleTimestamp renders local wall-clock time with milliseconds.
func consoleTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(consoleTimestampLayout)
}

// plainText renders a value for the line header (component, subject).
func plainText(v slog.Value) string {
	return valueText(v.Resolve())
}

// quotedText renders a value for the key=value tail, quoting anything that
// would break whitespace splitting.
func quotedText(v slog.Value) string {
	s := valueText(v.Resolve())
	if s == "" || strings.ContainsFunc(s, breaksPair) {
		return strconv.Quote(s)
	}
	return s
}

func valueText(v slog.Value) string {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return consoleTimestamp(v.Time())
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			return x.Error()
		case []string:
			return strings.Join(x, ",")
		case fmt.Stringer:
			return x.String()
		default:
			return fmt.Sprint(x)
		}
	default:
		return v.String()
	}
}

func breaksPair(r rune) bool {
	return r <= ' ' || r == '=' || r == '"'
}
