package media

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration converts a time value to seconds. Accepted are numbers and
// strings of the form `SS`, `MM:SS` or `HH:MM:SS`, each optionally with a
// fractional second part.
func ParseDuration(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return checkSeconds(v)
	case float32:
		return checkSeconds(float64(v))
	case int:
		return checkSeconds(float64(v))
	case int64:
		return checkSeconds(float64(v))
	case uint64:
		return checkSeconds(float64(v))
	case string:
		return parseClock(v)
	default:
		return 0, fmt.Errorf("unsupported time value %v (%T)", value, value)
	}
}

func checkSeconds(v float64) (float64, error) {
	if v < 0 {
		return 0, fmt.Errorf("negative time value %v", v)
	}
	return v, nil
}

func parseClock(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("empty time value")
	}
	segments := strings.Split(text, ":")
	if len(segments) > 3 {
		return 0, fmt.Errorf("invalid time value %q", text)
	}
	var total float64
	for i, segment := range segments {
		n, err := strconv.ParseFloat(segment, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time value %q", text)
		}
		if i < len(segments)-1 && n != float64(int(n)) {
			return 0, fmt.Errorf("invalid time value %q", text)
		}
		total = total*60 + n
	}
	return total, nil
}
