// Package detector samples the head of a log file and reports how well it
// matches the WMS line grammar the analyzer understands.
package detector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ccollicutt/wmslog/pkg/parser"
)

// DefaultSampleSize is the number of non-empty lines sampled by default.
const DefaultSampleSize = 100

// MinConfidence is the share of parsed lines above which a sample is
// considered a WMS log.
const MinConfidence = 0.5

// ProbeResult holds what a sample revealed about a log file.
type ProbeResult struct {
	SampledLines     int // Non-empty lines sampled
	TimestampedLines int // Lines starting with a well-formed timestamp
	ParsedLines      int // Of those, lines whose timestamp is a real instant
	ErrorLines       int
	DataSentLines    int
	ElapsedLines     int // Data-sent lines carrying an elapsed time
	CRLFLines        int // Lines ending in a carriage return

	Confidence     float64   // ParsedLines / SampledLines
	SampleLine     string    // First data-sent line, or first timestamped line
	FirstTimestamp time.Time // First parsed timestamp in the sample

	Compression parser.Compression
	Notes       []string
}

// Supported reports whether the sample looks like a WMS log.
func (r *ProbeResult) Supported() bool {
	return r.SampledLines > 0 && r.Confidence >= MinConfidence
}

// Detector samples log lines.
type Detector struct {
	sampleSize int
	extractor  *parser.TimestampExtractor
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithLocation sets the zone timestamps are parsed in (default time.Local).
func WithLocation(loc *time.Location) Option {
	return func(d *Detector) {
		d.extractor = parser.NewTimestampExtractor(loc)
	}
}

// New creates a new Detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		sampleSize: DefaultSampleSize,
		extractor:  parser.NewTimestampExtractor(nil),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples the head of a (possibly compressed) log file.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*ProbeResult, error) {
	src, _, err := parser.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	lines, err := d.sample(ctx, src)
	if err != nil {
		return nil, err
	}

	result := d.DetectFromLines(lines)
	result.Compression = src.Compression()
	return result, nil
}

// DetectFromLines probes a slice of log lines. Empty lines are skipped.
func (d *Detector) DetectFromLines(lines []string) *ProbeResult {
	result := &ProbeResult{Compression: parser.CompressionNone}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if result.SampledLines == d.sampleSize {
			break
		}
		result.SampledLines++

		if strings.HasSuffix(line, "\r") {
			result.CRLFLines++
		}
		if parser.IsError(line) {
			result.ErrorLines++
		}

		_, hasPrefix := parser.TimestampPrefix(line)
		if hasPrefix {
			result.TimestampedLines++
			if ts, err := d.extractor.Extract(line); err == nil {
				result.ParsedLines++
				if result.FirstTimestamp.IsZero() {
					result.FirstTimestamp = ts
				}
			}
			if result.SampleLine == "" {
				result.SampleLine = line
			}
		}

		if parser.IsDataSent(line) {
			if result.DataSentLines == 0 {
				result.SampleLine = line
			}
			result.DataSentLines++
			if _, ok := parser.ElapsedTime(line); ok {
				result.ElapsedLines++
			}
		}
	}

	if result.SampledLines > 0 {
		result.Confidence = float64(result.ParsedLines) / float64(result.SampledLines)
	}
	result.Notes = notes(result)
	return result
}

func notes(r *ProbeResult) []string {
	var out []string
	if r.SampledLines == 0 {
		return append(out, "No non-empty lines to sample")
	}
	if r.TimestampedLines == 0 {
		out = append(out, "No line starts with a yyyy-MM-dd HH:mm:ss,SSS timestamp")
	} else if r.ParsedLines < r.TimestampedLines {
		out = append(out, fmt.Sprintf("%d timestamp(s) have the right shape but are not valid dates",
			r.TimestampedLines-r.ParsedLines))
	}
	if r.DataSentLines == 0 {
		out = append(out, "No 'Sent data to: WMS_SNIMACLOG' lines in sample; interval statistics will be empty")
	} else if r.ElapsedLines == 0 {
		out = append(out, "Data-sent lines carry no 'Elapsed time: N ms'; elapsed statistics will be empty")
	}
	if r.CRLFLines > 0 {
		out = append(out, "Lines end with CRLF; carriage returns are kept in line content")
	}
	return out
}

// sample reads up to sampleSize non-empty lines.
func (d *Detector) sample(ctx context.Context, src parser.LineSource) ([]string, error) {
	var lines []string
	for len(lines) < d.sampleSize {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line.Content) != "" {
			lines = append(lines, line.Content)
		}
	}
	return lines, nil
}
