package filter

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// TimestampLayout is the wire format for StartTime and EndTime.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// bareDateMaxLen is the longest raw input still treated as a date without a
// time of day. Such an end time covers the whole day.
const bareDateMaxLen = 12

// NormalizeTimestamp parses a user supplied time in the local zone and returns
// it in TimestampLayout.
func NormalizeTimestamp(input string) (string, error) {
	t, err := parseTimestamp(input)
	if err != nil {
		return "", err
	}
	return t.Format(TimestampLayout), nil
}

// NormalizeEndTimestamp is NormalizeTimestamp for the upper bound of a range:
// a bare date is advanced by one calendar day so the range includes it.
func NormalizeEndTimestamp(input string) (string, error) {
	t, err := parseTimestamp(input)
	if err != nil {
		return "", err
	}
	if len(input) <= bareDateMaxLen {
		t = t.AddDate(0, 0, 1)
	}
	return t.Format(TimestampLayout), nil
}

func parseTimestamp(input string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return time.Time{}, &InvalidTimestampError{Input: input}
	}
	t, err := dateparse.ParseIn(trimmed, time.Local)
	if err != nil {
		return time.Time{}, &InvalidTimestampError{Input: input, Err: err}
	}
	return t, nil
}
