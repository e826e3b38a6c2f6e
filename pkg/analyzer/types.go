// Package analyzer derives transfer statistics from WMS logs.
package analyzer

import (
	"time"
)

// TimestampedValue is one point of a time series.
type TimestampedValue struct {
	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
	Value     float64   `json:"value" msgpack:"value"`
}

// Series is a sequence of points in creation order.
// Callers rely on creation order matching ascending timestamps; it is never re-sorted.
type Series []TimestampedValue

// Times returns the timestamps of the series.
func (s Series) Times() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Timestamp
	}
	return out
}

// Values returns the values of the series.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Peak returns the index of the first occurrence of the largest value.
// Returns -1 for an empty series.
func (s Series) Peak() int {
	idx := -1
	for i, p := range s {
		if idx < 0 || p.Value > s[idx].Value {
			idx = i
		}
	}
	return idx
}

// AnalysisResult is the aggregate produced from one log file.
// It is built once per analysis and never modified afterwards.
type AnalysisResult struct {
	FileName string `json:"fileName" msgpack:"fileName"`
	FileSize int64  `json:"fileSize" msgpack:"fileSize"`

	// ErrorCount is the number of lines containing the error marker.
	ErrorCount int `json:"errorCount" msgpack:"errorCount"`

	// SentDataCount is the number of lines containing the data-sent marker,
	// including those whose timestamp could not be parsed.
	SentDataCount int `json:"sentDataCount" msgpack:"sentDataCount"`

	// AverageElapsedTime is the rounded mean elapsed time in milliseconds, 0 if none.
	AverageElapsedTime int64 `json:"averageElapsedTime" msgpack:"averageElapsedTime"`

	// AverageInterval is the mean gap in seconds between consecutive
	// data-sent events, computed before peak suppression. 0 if fewer than two.
	AverageInterval float64 `json:"averageInterval" msgpack:"averageInterval"`

	// MaxElapsedTime is the largest elapsed time in milliseconds, 0 if none.
	MaxElapsedTime int64 `json:"maxElapsedTime" msgpack:"maxElapsedTime"`

	// MaxElapsedTimeTimestamp is the raw timestamp prefix of the line that
	// produced MaxElapsedTime. Nil if no elapsed time was seen.
	MaxElapsedTimeTimestamp *string `json:"maxElapsedTimeTimestamp" msgpack:"maxElapsedTimeTimestamp"`

	// ElapsedTimeData has one point per data-sent line carrying both a valid
	// timestamp and an elapsed time, in source order.
	ElapsedTimeData Series `json:"elapsedTimeData" msgpack:"elapsedTimeData"`

	// IntervalData has one point per consecutive pair of data-sent instants
	// (seconds, 2 decimals), with the first peak removed when more than two remain.
	IntervalData Series `json:"intervalData" msgpack:"intervalData"`

	// FirstLogTimestamp and LastLogTimestamp are the raw prefixes of the
	// first and last lines starting with a timestamp.
	FirstLogTimestamp *string `json:"firstLogTimestamp" msgpack:"firstLogTimestamp"`
	LastLogTimestamp  *string `json:"lastLogTimestamp" msgpack:"lastLogTimestamp"`

	// LinesProcessed is the number of line-feed separated lines examined.
	LinesProcessed int `json:"linesProcessed" msgpack:"linesProcessed"`
}

// PeakElapsed returns the maximum elapsed time and whether one was seen.
// Unlike MaxElapsedTime it distinguishes "none" from a genuine 0 ms.
func (r *AnalysisResult) PeakElapsed() (int64, bool) {
	return r.MaxElapsedTime, r.MaxElapsedTimeTimestamp != nil
}

// HasErrors returns true if any error lines were found.
func (r *AnalysisResult) HasErrors() bool {
	return r.ErrorCount > 0
}
