package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ccollicutt/wmslog/pkg/parser"
)

// ErrAnalysisFailed is returned when analysis stops on an unexpected internal failure.
var ErrAnalysisFailed = errors.New("an unknown error occurred during parsing")

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithLocation sets the time zone log timestamps are interpreted in.
// Defaults to the local time zone.
func WithLocation(loc *time.Location) Option {
	return func(a *Accumulator) {
		a.extractor = parser.NewTimestampExtractor(loc)
	}
}

// Accumulator folds log lines into running statistics.
// Feed it every line in source order with Add, then call Result once.
type Accumulator struct {
	extractor *parser.TimestampExtractor

	lines         int
	errorCount    int
	sentDataCount int

	elapsedTotal int64
	elapsedCount int

	// hasMax distinguishes "no elapsed time yet" from a maximum of 0.
	hasMax       bool
	maxElapsed   int64
	maxElapsedTS string

	firstTimestamp *string
	lastTimestamp  *string

	sentInstants []time.Time
	elapsedData  Series
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator(opts ...Option) *Accumulator {
	a := &Accumulator{
		extractor:   parser.NewTimestampExtractor(nil),
		elapsedData: Series{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add classifies a single line and updates the running statistics.
// Lines that match nothing are counted and otherwise ignored.
func (a *Accumulator) Add(line string) {
	a.lines++

	if ts, ok := parser.TimestampPrefix(line); ok {
		if a.firstTimestamp == nil {
			a.firstTimestamp = &ts
		}
		a.lastTimestamp = &ts
	}

	if parser.IsError(line) {
		a.errorCount++
	}

	if !parser.IsDataSent(line) {
		return
	}
	a.sentDataCount++

	instant, err := a.extractor.Extract(line)
	valid := err == nil
	if valid {
		a.sentInstants = append(a.sentInstants, instant)
	}

	elapsed, ok := parser.ElapsedTime(line)
	if !ok {
		return
	}

	a.elapsedTotal += elapsed
	a.elapsedCount++

	if valid {
		a.elapsedData = append(a.elapsedData, TimestampedValue{
			Timestamp: instant,
			Value:     float64(elapsed),
		})
	}

	if !a.hasMax || elapsed > a.maxElapsed {
		a.hasMax = true
		a.maxElapsed = elapsed
		a.maxElapsedTS = parser.RawPrefix(line)
	}
}

// Result builds the final aggregate. info is passed through unchanged.
func (a *Accumulator) Result(info parser.FileInfo) *AnalysisResult {
	result := &AnalysisResult{
		FileName:          info.Name,
		FileSize:          info.Size,
		ErrorCount:        a.errorCount,
		SentDataCount:     a.sentDataCount,
		ElapsedTimeData:   append(Series{}, a.elapsedData...),
		FirstLogTimestamp: a.firstTimestamp,
		LastLogTimestamp:  a.lastTimestamp,
		LinesProcessed:    a.lines,
	}

	if a.elapsedCount > 0 {
		result.AverageElapsedTime = int64(math.Round(float64(a.elapsedTotal) / float64(a.elapsedCount)))
	}

	if a.hasMax {
		ts := a.maxElapsedTS
		result.MaxElapsedTime = a.maxElapsed
		result.MaxElapsedTimeTimestamp = &ts
	}

	intervals, avg := Intervals(a.sentInstants)
	result.AverageInterval = avg
	result.IntervalData = SuppressPeak(intervals)

	return result
}

// Analyze runs a full pass over content, split on line feeds.
// Malformed lines never cause an error; they just do not contribute.
func Analyze(content string, info parser.FileInfo, opts ...Option) *AnalysisResult {
	acc := NewAccumulator(opts...)
	for _, line := range strings.Split(content, "\n") {
		acc.Add(line)
	}
	return acc.Result(info)
}

// AnalyzeReader runs a full pass over the lines of src.
// It returns ctx.Err() if cancelled between lines, a wrapped read error if
// src fails, and ErrAnalysisFailed if the pass panics.
func AnalyzeReader(ctx context.Context, src parser.LineSource, info parser.FileInfo, opts ...Option) (result *AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("analysis panicked", "file", info.Name, "panic", r)
			result, err = nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, r)
		}
	}()

	acc := NewAccumulator(opts...)
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}
		acc.Add(line.Content)
	}

	result = acc.Result(info)
	slog.Debug("analysis complete",
		"file", info.Name,
		"lines", result.LinesProcessed,
		"errors", result.ErrorCount,
		"sent", result.SentDataCount)

	return result, nil
}
