package parser

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"
)

const (
	// TimestampLength is the width of the timestamp prefix, e.g. "2024-01-15 10:30:00,123".
	TimestampLength = 23

	// TimestampLayout is the Go time layout of the timestamp prefix.
	// The comma introduces the millisecond fraction.
	TimestampLayout = "2006-01-02 15:04:05,000"
)

var timestampPrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3}`)

// TimestampPrefix returns the raw timestamp at the start of line if the line
// begins with the YYYY-MM-DD HH:mm:ss,fff shape. Calendar validity is not checked.
func TimestampPrefix(line string) (string, bool) {
	m := timestampPrefixPattern.FindString(line)
	return m, m != ""
}

// RawPrefix returns the first TimestampLength characters of line, or the
// whole line when it is shorter. It never splits a multi-byte character.
func RawPrefix(line string) string {
	n := 0
	for i := range line {
		if n == TimestampLength {
			return line[:i]
		}
		n++
	}
	return line
}

// TimestampExtractor parses the leading timestamp of a line into an instant.
type TimestampExtractor struct {
	loc *time.Location
}

// NewTimestampExtractor creates an extractor that interprets timestamps in loc.
// A nil loc means the local time zone.
func NewTimestampExtractor(loc *time.Location) *TimestampExtractor {
	if loc == nil {
		loc = time.Local
	}
	return &TimestampExtractor{loc: loc}
}

// Location returns the zone timestamps are interpreted in.
func (e *TimestampExtractor) Location() *time.Location {
	return e.loc
}

// Extract parses the first TimestampLength characters of line.
// Returns zero time and error if the prefix is too short or is not a valid date-time.
func (e *TimestampExtractor) Extract(line string) (time.Time, error) {
	raw := RawPrefix(line)
	if utf8.RuneCountInString(raw) < TimestampLength {
		return time.Time{}, fmt.Errorf("line too short for timestamp: %q", raw)
	}

	ts, err := time.ParseInLocation(TimestampLayout, raw, e.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", raw, err)
	}

	return ts, nil
}
