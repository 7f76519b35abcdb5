package booking

import (
	"log/slog"
	"strings"
	"time"
)

// DateLayout is the canonical appointment date format.
const DateLayout = "2006-01-02"

var acceptedDateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// NormalizeDate converts a stored appointment date into YYYY-MM-DD.
// Timestamp values use their UTC calendar date; strings are parsed with the
// accepted layouts. The second return is false when nothing usable was found.
func NormalizeDate(v any) (string, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return "", false
		}
		return d.UTC().Format(DateLayout), true
	case *time.Time:
		if d == nil {
			return "", false
		}
		return NormalizeDate(*d)
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return "", false
		}
		for _, layout := range acceptedDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC().Format(DateLayout), true
			}
		}
		return "", false
	case *string:
		if d == nil {
			return "", false
		}
		return NormalizeDate(*d)
	default:
		return "", false
	}
}

// CanonicalDate is NormalizeDate for store adapters: a value that is present
// but unparseable is logged and degrades to the empty date.
func CanonicalDate(bookingID string, v any) string {
	date, ok := NormalizeDate(v)
	if !ok && !isBlank(v) {
		slog.Warn("unparseable appointment date, excluding booking from date aggregation",
			"booking_id", bookingID,
			"value", v,
		)
	}
	return date
}

func isBlank(v any) bool {
	switch d := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(d) == ""
	case *string:
		return d == nil || strings.TrimSpace(*d) == ""
	case *time.Time:
		return d == nil
	}
	return false
}
