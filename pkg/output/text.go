package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ccollicutt/wmslog/pkg/analyzer"
	"github.com/ccollicutt/wmslog/pkg/chart"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	tw := &textWriter{w: w}
	if f.opts.Quiet {
		f.formatQuiet(report, tw)
	} else {
		f.formatFull(report, tw)
	}
	return tw.err
}

func (f *TextFormatter) formatQuiet(report *Report, w *textWriter) {
	s := report.Summary
	w.printf("wmslog: %s errors, %s data sent, avg elapsed %d ms, avg interval %.2f s\n",
		FormatCount(s.ErrorCount),
		FormatCount(s.SentDataCount),
		s.AverageElapsedTime,
		s.AverageInterval)
}

func (f *TextFormatter) formatFull(report *Report, w *textWriter) {
	r := report.Result
	loc := location(report.Metadata.Timezone)

	w.println("=== WMS Log Analysis Report ===")
	w.println()
	w.printf("File: %s (%s)\n", r.FileName, FormatBytes(r.FileSize))

	if r.FirstLogTimestamp != nil && r.LastLogTimestamp != nil {
		w.printf("Log period: %s -> %s\n",
			FormatDateTime(r.FirstLogTimestamp, loc),
			FormatDateTime(r.LastLogTimestamp, loc))
	}
	w.println()

	w.printf("  %-22s %s\n", "Total ERROR records:", FormatCount(r.ErrorCount))
	w.printf("  %-22s %s\n", "'Sent data to: ...':", FormatCount(r.SentDataCount))
	w.printf("  %-22s %d ms\n", "Avg. Elapsed Time:", r.AverageElapsedTime)
	w.printf("  %-22s %.2f s\n", "Avg. Interval:", r.AverageInterval)
	w.printf("  %-22s %d ms (%s)\n", "Peak Elapsed Time:", r.MaxElapsedTime,
		FormatDateTime(r.MaxElapsedTimeTimestamp, loc))
	w.println()

	f.formatSeries("Elapsed Time Over Time", r.ElapsedTimeData, w)
	f.formatSeries("Data Send Interval Over Time", r.IntervalData, w)

	if len(report.Metadata.Charts) > 0 {
		w.println()
		w.println("Charts:")
		for _, path := range report.Metadata.Charts {
			w.printf("  %s\n", path)
		}
	}

	if f.opts.Verbose {
		w.println("---")
		w.printf("Report ID: %s\n", report.ID)
		w.printf("Source: %s\n", report.Metadata.Source)
		w.printf("Timezone: %s\n", report.Metadata.Timezone)
		w.printf("Lines processed: %s\n", FormatCount(r.LinesProcessed))
		w.printf("Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}
}

func (f *TextFormatter) formatSeries(title string, s analyzer.Series, w *textWriter) {
	w.printf("%s: ", title)

	if len(s) < 2 {
		w.println(capitalize(chart.ErrTooFewPoints.Error()))
		return
	}

	first, last := s[0].Timestamp, s[len(s)-1].Timestamp
	if first.Equal(last) {
		w.println(capitalize(chart.ErrZeroTimeSpan.Error()))
		return
	}

	peak := s[s.Peak()]
	w.printf("%s points, %s to %s, peak %g at %s\n",
		FormatCount(len(s)),
		first.Format("15:04:05"),
		last.Format("15:04:05"),
		peak.Value,
		peak.Timestamp.Format(DateTimeLayout))

	if f.opts.Verbose {
		for _, p := range s {
			w.printf("  %s  %g\n", p.Timestamp.Format(DateTimeLayout), p.Value)
		}
	}
}

// textWriter keeps the first write error so formatting code stays linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) println(args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintln(t.w, args...)
}

func location(name string) *time.Location {
	switch name {
	case "", "Local":
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
