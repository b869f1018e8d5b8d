package utils

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/logger"
)

// ErrMalformedDate is returned when a value cannot be turned into a calendar day.
var ErrMalformedDate = errors.New("malformed date")

var canonicalDayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts carrying their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05-07",
}

// Layouts without an offset; read as wall time in the target location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// CanonicalDay converts a timestamp or date string into the YYYY-MM-DD calendar day in loc.
//
// Strings already shaped YYYY-MM-DD are returned as-is without parsing, so a date-only
// value is never shifted across a zone boundary. time.Time values and timestamp strings
// are reprojected into loc before their calendar fields are read. On failure the original
// string (or the %v rendering of v) is returned together with ErrMalformedDate.
func CanonicalDay(v any, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}

	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return fmt.Sprintf("%v", val), fmt.Errorf("%w: zero time", ErrMalformedDate)
		}
		return val.In(loc).Format(constants.DateFormat), nil
	case *time.Time:
		if val == nil {
			return fmt.Sprintf("%v", v), fmt.Errorf("%w: nil time", ErrMalformedDate)
		}
		return CanonicalDay(*val, loc)
	case string:
		return canonicalDayFromString(val, loc)
	default:
		return fmt.Sprintf("%v", v), fmt.Errorf("%w: unsupported type %T", ErrMalformedDate, v)
	}
}

func canonicalDayFromString(s string, loc *time.Location) (string, error) {
	if canonicalDayPattern.MatchString(s) {
		return s, nil
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc).Format(constants.DateFormat), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Format(constants.DateFormat), nil
		}
	}

	return s, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

// ToCanonicalDay is CanonicalDay for callers that display whatever they get.
// Unparseable input is logged and passed through unchanged.
func ToCanonicalDay(v any, loc *time.Location) string {
	day, err := CanonicalDay(v, loc)
	if err != nil {
		logger.Warn("Date normalization failed, passing value through", "value", v, "error", err)
	}
	return day
}
