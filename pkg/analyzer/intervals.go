package analyzer

import (
	"math"
	"time"
)

// Intervals computes the gap in seconds between each pair of consecutive
// instants. Each point is stamped with the later instant and its value is
// rounded to 2 decimals. The returned mean uses the unrounded gaps and is 0
// when fewer than two instants are given.
func Intervals(instants []time.Time) (Series, float64) {
	if len(instants) < 2 {
		return Series{}, 0
	}

	series := make(Series, 0, len(instants)-1)
	var total float64
	for i := 1; i < len(instants); i++ {
		seconds := float64(instants[i].Sub(instants[i-1]).Milliseconds()) / 1000
		total += seconds
		series = append(series, TimestampedValue{
			Timestamp: instants[i],
			Value:     roundTo(seconds, 2),
		})
	}

	return series, total / float64(len(instants)-1)
}

// SuppressPeak drops the first occurrence of the largest value when the
// series has more than two points, so one anomalous gap does not flatten the
// chart. Ties beyond the first are kept. The input is not modified.
func SuppressPeak(s Series) Series {
	if len(s) <= 2 {
		return s
	}

	peak := s.Peak()
	out := make(Series, 0, len(s)-1)
	out = append(out, s[:peak]...)
	return append(out, s[peak+1:]...)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
