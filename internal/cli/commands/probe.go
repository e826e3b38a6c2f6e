package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/wmslog/pkg/detector"
	"github.com/ccollicutt/wmslog/pkg/output"
	"github.com/ccollicutt/wmslog/pkg/parser"
)

// ProbeOptions holds command-line options for the probe command.
type ProbeOptions struct {
	commonOptions

	Output     string
	SampleSize int
}

// NewProbeCommand creates the probe command.
func NewProbeCommand() *cobra.Command {
	opts := &ProbeOptions{}

	cmd := &cobra.Command{
		Use:   "probe <log-file>",
		Short: "Check whether a file looks like a WMS log",
		Long: `Sample the head of a log file and report how well it matches the
WMS line format: a leading yyyy-MM-dd HH:mm:ss,SSS timestamp, "] ERROR"
records and "INFO  Sent data to: WMS_SNIMACLOG" records with an
"Elapsed time: N ms" suffix.

Example:
  wmslog probe /var/log/wms/interface.log
  wmslog probe --sample 500 -o json interface.log.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, args, opts)
		},
	}

	addCommonFlags(cmd, &opts.commonOptions)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of lines to sample")

	return cmd
}

func runProbe(cmd *cobra.Command, args []string, opts *ProbeOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	cfg, err := loadConfig(ctx, cmd, &opts.commonOptions, nil)
	if err != nil {
		return err
	}

	d := detector.New(
		detector.WithSampleSize(opts.SampleSize),
		detector.WithLocation(cfg.Location()),
	)

	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("%s (%w)", readFailureMessage, err)
	}

	if opts.Output == "json" {
		return outputProbeJSON(cmd.OutOrStdout(), result, logFile)
	}
	return outputProbeText(cmd.OutOrStdout(), result, logFile)
}

func outputProbeText(w io.Writer, result *detector.ProbeResult, logFile string) error {
	fmt.Fprintln(w, "=== WMS Log Probe ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", logFile)
	if result.Compression != parser.CompressionNone {
		fmt.Fprintf(w, "Compression: %s\n", result.Compression)
	}
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines with timestamps: %d (%d valid)\n", result.TimestampedLines, result.ParsedLines)
	fmt.Fprintf(w, "ERROR records: %d\n", result.ErrorLines)
	fmt.Fprintf(w, "Data sent records: %d (%d with elapsed time)\n", result.DataSentLines, result.ElapsedLines)
	fmt.Fprintln(w)

	if result.Supported() {
		fmt.Fprintf(w, "Looks like a WMS log: %.1f%% confidence\n", result.Confidence*100)
	} else {
		fmt.Fprintf(w, "Does not look like a WMS log: %.1f%% confidence\n", result.Confidence*100)
	}

	if result.SampleLine != "" {
		fmt.Fprintf(w, "\nSample match:\n  %s\n", result.SampleLine)
	}
	if !result.FirstTimestamp.IsZero() {
		fmt.Fprintf(w, "Parsed as: %s\n", result.FirstTimestamp.Format(output.DateTimeLayout+" MST"))
	}

	if len(result.Notes) > 0 {
		fmt.Fprintln(w)
		for _, n := range result.Notes {
			fmt.Fprintf(w, "Note: %s\n", n)
		}
	}
	return nil
}

// ProbeJSON represents the JSON output of the probe command.
type ProbeJSON struct {
	File             string   `json:"file"`
	Supported        bool     `json:"supported"`
	Confidence       float64  `json:"confidence"`
	Compression      string   `json:"compression"`
	SampledLines     int      `json:"sampled_lines"`
	TimestampedLines int      `json:"timestamped_lines"`
	ParsedLines      int      `json:"parsed_lines"`
	ErrorLines       int      `json:"error_lines"`
	DataSentLines    int      `json:"data_sent_lines"`
	ElapsedLines     int      `json:"elapsed_lines"`
	SampleLine       string   `json:"sample_line,omitempty"`
	Notes            []string `json:"notes"`
}

func outputProbeJSON(w io.Writer, result *detector.ProbeResult, logFile string) error {
	out := ProbeJSON{
		File:             logFile,
		Supported:        result.Supported(),
		Confidence:       result.Confidence,
		Compression:      string(result.Compression),
		SampledLines:     result.SampledLines,
		TimestampedLines: result.TimestampedLines,
		ParsedLines:      result.ParsedLines,
		ErrorLines:       result.ErrorLines,
		DataSentLines:    result.DataSentLines,
		ElapsedLines:     result.ElapsedLines,
		SampleLine:       result.SampleLine,
		Notes:            result.Notes,
	}
	if out.Notes == nil {
		out.Notes = []string{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
