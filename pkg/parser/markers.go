package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Fixed markers of the WMS transfer log format.
const (
	// ErrorMarker identifies an error line.
	ErrorMarker = "] ERROR"

	// DataSentMarker identifies a successful transfer to the WMS. Note the two spaces after INFO.
	DataSentMarker = "INFO  Sent data to: WMS_SNIMACLOG"
)

var elapsedTimePattern = regexp.MustCompile(`Elapsed time: (\d+) ms`)

// IsError reports whether line contains the error marker anywhere.
func IsError(line string) bool {
	return strings.Contains(line, ErrorMarker)
}

// IsDataSent reports whether line contains the data-sent marker anywhere.
func IsDataSent(line string) bool {
	return strings.Contains(line, DataSentMarker)
}

// ElapsedTime extracts the millisecond value of the first
// "Elapsed time: <digits> ms" marker in line.
// Values that overflow int64 are treated as absent.
func ElapsedTime(line string) (int64, bool) {
	m := elapsedTimePattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return 0, false
	}

	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
