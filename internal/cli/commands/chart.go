package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/wmslog/pkg/chart"
	"github.com/ccollicutt/wmslog/pkg/config"
)

// ChartOptions holds command-line options for the chart command.
type ChartOptions struct {
	commonOptions

	Dir    string
	Format string
}

// DefaultChartDir is where the chart command writes when --dir is not given.
const DefaultChartDir = "charts"

// NewChartCommand creates the chart command.
func NewChartCommand() *cobra.Command {
	opts := &ChartOptions{}

	cmd := &cobra.Command{
		Use:   "chart <log-file>",
		Short: "Render elapsed-time and send-interval charts",
		Long: `Analyze a WMS log and write its two charts without printing a report.

Writes elapsed_time.<format> and interval.<format> into the chart directory.
A series with fewer than two points, or whose points share one timestamp,
is skipped.

Example:
  wmslog chart /var/log/wms/interface.log
  wmslog chart --dir /tmp/charts --format svg interface.log.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, args, opts)
		},
	}

	addCommonFlags(cmd, &opts.commonOptions)
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", DefaultChartDir, "Directory to write charts to")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", config.DefaultChartFormat, "Chart image format (png|svg)")

	return cmd
}

func runChart(cmd *cobra.Command, args []string, opts *ChartOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, cmd, &opts.commonOptions, func(cfg *config.Config) {
		if cmd.Flags().Changed("dir") || cfg.Charts.Dir == "" {
			cfg.Charts.Dir = opts.Dir
		}
		if cmd.Flags().Changed("format") {
			cfg.Charts.Format = opts.Format
		}
	})
	if err != nil {
		return err
	}

	result, err := analyzeFile(ctx, logFile, cfg)
	if err != nil {
		return err
	}

	paths, err := renderCharts(result, cfg.Charts)
	if err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintf(out, "%s: %s\n", logFile, chart.ErrTooFewPoints)
		return nil
	}
	for _, p := range paths {
		fmt.Fprintf(out, "Wrote %s\n", p)
	}
	return nil
}
