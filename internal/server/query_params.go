package server

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseOptionalTime parses an inclusive yyyy-MM-dd calendar date as UTC.
// End-of-range dates are extended to the last instant of the day.
func parseOptionalTime(value string, endOfRange bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	parsed, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return nil, err
	}
	if endOfRange {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return &parsed, nil
}
