package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/wmslog/internal/logging"
	"github.com/ccollicutt/wmslog/pkg/analyzer"
	"github.com/ccollicutt/wmslog/pkg/chart"
	"github.com/ccollicutt/wmslog/pkg/config"
	"github.com/ccollicutt/wmslog/pkg/output"
	"github.com/ccollicutt/wmslog/pkg/parser"
	"github.com/ccollicutt/wmslog/pkg/render"
)

// readFailureMessage is shown when a log file cannot be acquired.
const readFailureMessage = "Failed to read the file. Please check file permissions and try again."

// commonOptions are the flags shared by commands that read a log file.
type commonOptions struct {
	ConfigPath string
	Timezone   string
	LogLevel   string
}

func addCommonFlags(cmd *cobra.Command, o *commonOptions) {
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "Configuration file (optional)")
	cmd.Flags().StringVar(&o.Timezone, "timezone", config.DefaultTimezone, "Zone log timestamps are written in (IANA name, Local or UTC)")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", config.DefaultLogLevel, "Diagnostic log level (debug|info|warn|error)")
}

// loadConfig loads the optional config file, applies flags the user set
// explicitly, and validates the result.
func loadConfig(ctx context.Context, cmd *cobra.Command, o *commonOptions, override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(ctx, o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("timezone") {
		cfg.Timezone = o.Timezone
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if override != nil {
		override(cfg)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	logging.Init(output.IsMachineReadable(cfg.Output), logging.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

// analyzeFile runs a full analysis pass over the log file at path.
func analyzeFile(ctx context.Context, path string, cfg *config.Config) (*analyzer.AnalysisResult, error) {
	src, info, err := parser.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s (%w)", readFailureMessage, err)
	}
	defer src.Close()

	slog.Debug("reading log", "file", path, "size", info.Size, "compression", src.Compression())

	result, err := analyzer.AnalyzeReader(ctx, src, info, analyzer.WithLocation(cfg.Location()))
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, analyzer.ErrAnalysisFailed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return nil, fmt.Errorf("analysis failed: %w", err)
	default:
		return nil, fmt.Errorf("%s (%w)", readFailureMessage, err)
	}
}

// renderCharts writes one chart per series into dir. Series that cannot be
// charted are skipped.
func renderCharts(result *analyzer.AnalysisResult, cc config.ChartsConfig) ([]string, error) {
	format, err := render.ParseFormat(cc.Format)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, c := range []struct {
		series analyzer.Series
		spec   render.Spec
	}{
		{result.ElapsedTimeData, render.ElapsedTimeChart},
		{result.IntervalData, render.IntervalChart},
	} {
		g, err := chart.Compute(c.series, cc.Viewport)
		if errors.Is(err, chart.ErrTooFewPoints) || errors.Is(err, chart.ErrZeroTimeSpan) {
			slog.Info("skipping chart", "chart", c.spec.Name, "reason", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("laying out %s chart: %w", c.spec.Name, err)
		}

		path, err := render.WriteFile(cc.Dir, g, c.spec, format)
		if err != nil {
			return nil, err
		}
		slog.Debug("chart written", "chart", c.spec.Name, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}
