package service

import (
	"time"

	"github.com/talleraustral/taller/internal/report/domain"
)

const dateLayout = "2006-01-02"

// parseDate reads a yyyy-MM-dd calendar date as UTC midnight.
func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

// parseRange resolves an optional inclusive range. Empty bounds disable
// that side of the filter; the end bound covers its whole day.
func parseRange(startDate, endDate string) (start, end *time.Time, err error) {
	if startDate != "" {
		s, err := parseDate(startDate)
		if err != nil {
			return nil, nil, err
		}
		start = &s
	}
	if endDate != "" {
		e, err := parseDate(endDate)
		if err != nil {
			return nil, nil, err
		}
		e = endOfDay(e)
		end = &e
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, domain.ErrInvalidRange
	}
	return start, end, nil
}

// parseRequiredRange is parseRange for reports that demand both bounds.
func parseRequiredRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, domain.ErrInvalidRange
	}
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return *start, *end, nil
}

func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Nanosecond)
}

func inRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

// wholeDays truncates the elapsed time between two instants to whole days.
func wholeDays(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
