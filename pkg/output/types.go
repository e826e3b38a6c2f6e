// Package output provides formatting and output generation for analysis results.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/wmslog/pkg/analyzer"
)

// Report is the complete analysis output.
type Report struct {
	// ID identifies this report, e.g. in webhook receivers.
	ID string `json:"id" msgpack:"id"`

	// Summary provides the headline figures.
	Summary Summary `json:"summary" msgpack:"summary"`

	// Result is the full analysis, including both series.
	Result *analyzer.AnalysisResult `json:"result" msgpack:"result"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata" msgpack:"metadata"`
}

// Summary provides the headline figures of an analysis.
type Summary struct {
	ErrorCount         int     `json:"errorCount" msgpack:"errorCount"`
	SentDataCount      int     `json:"sentDataCount" msgpack:"sentDataCount"`
	AverageElapsedTime int64   `json:"averageElapsedTime" msgpack:"averageElapsedTime"`
	AverageInterval    float64 `json:"averageInterval" msgpack:"averageInterval"`
	LinesProcessed     int     `json:"linesProcessed" msgpack:"linesProcessed"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// Source is the path of the analyzed file.
	Source string `json:"source" msgpack:"source"`

	// Timezone is the zone log timestamps were read in.
	Timezone string `json:"timezone" msgpack:"timezone"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzedAt" msgpack:"analyzedAt"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration" msgpack:"duration"`

	// Charts lists rendered chart files, if any.
	Charts []string `json:"charts,omitempty" msgpack:"charts,omitempty"`
}

// NewReport creates a Report from an analysis result.
func NewReport(result *analyzer.AnalysisResult, meta Metadata) *Report {
	return &Report{
		ID:     uuid.NewString(),
		Result: result,
		Summary: Summary{
			ErrorCount:         result.ErrorCount,
			SentDataCount:      result.SentDataCount,
			AverageElapsedTime: result.AverageElapsedTime,
			AverageInterval:    result.AverageInterval,
			LinesProcessed:     result.LinesProcessed,
		},
		Metadata: meta,
	}
}

// HasErrors returns true if any ERROR lines were found.
func (r *Report) HasErrors() bool {
	return r.Summary.ErrorCount > 0
}
