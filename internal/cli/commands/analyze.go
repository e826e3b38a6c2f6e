package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/wmslog/pkg/config"
	"github.com/ccollicutt/wmslog/pkg/output"
	"github.com/ccollicutt/wmslog/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	commonOptions

	Output      string
	ChartDir    string
	ChartFormat string
	Verbose     bool
	Quiet       bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <log-file>",
		Short: "Analyze a WMS log file",
		Long: `Analyze a WMS interface log and report transfer statistics.

Reports:
  - ERROR records
  - 'Sent data to: WMS_SNIMACLOG' records and their elapsed times
  - Intervals between consecutive transfers
  - Log period and peak elapsed time

Gzip and zstd compressed logs are read transparently. With --chart-dir,
elapsed-time and send-interval charts are written as PNG or SVG.

Exit codes:
  0 - No ERROR records found
  1 - ERROR records found
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	addCommonFlags(cmd, &opts.commonOptions)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json|msgpack)")
	cmd.Flags().StringVar(&opts.ChartDir, "chart-dir", "", "Write charts to this directory")
	cmd.Flags().StringVar(&opts.ChartFormat, "chart-format", config.DefaultChartFormat, "Chart image format (png|svg)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show run details and every series point")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnErrors), "When to fire webhook (on_errors|always|never)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ExitCode = 0

	cfg, err := loadConfig(ctx, cmd, &opts.commonOptions, func(cfg *config.Config) {
		applyAnalyzeFlags(cmd, opts, cfg)
	})
	if err != nil {
		return err
	}

	formatter, err := createFormatter(cfg, opts)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := analyzeFile(ctx, logFile, cfg)
	if err != nil {
		return err
	}

	var charts []string
	if cfg.Charts.Dir != "" {
		charts, err = renderCharts(result, cfg.Charts)
		if err != nil {
			return fmt.Errorf("rendering charts: %w", err)
		}
	}

	report := output.NewReport(result, output.Metadata{
		Source:     logFile,
		Timezone:   cfg.Timezone,
		AnalyzedAt: start,
		Duration:   time.Since(start),
		Charts:     charts,
	})

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail analysis)
	sendWebhooks(ctx, cfg.Webhooks, report)

	if report.HasErrors() {
		ExitCode = 1
	}

	return nil
}

// applyAnalyzeFlags overlays explicitly set flags onto the loaded config.
func applyAnalyzeFlags(cmd *cobra.Command, opts *AnalyzeOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("chart-dir") {
		cfg.Charts.Dir = opts.ChartDir
	}
	if flags.Changed("chart-format") {
		cfg.Charts.Format = opts.ChartFormat
	}

	if opts.WebhookURL != "" {
		cfg.Webhooks = append(cfg.Webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTrigger(opts.WebhookTrigger),
		})
	}
}

func createFormatter(cfg *config.Config, opts *AnalyzeOptions) (output.Formatter, error) {
	return output.NewFormatter(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
}

// sendWebhooks sends the report to every webhook whose trigger fires.
// Failures are logged but don't fail the analysis.
func sendWebhooks(ctx context.Context, webhooks []config.WebhookConfig, report *output.Report) {
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !webhook.ShouldFire(wh.Trigger, report) {
			continue
		}

		resp := client.Send(ctx, report, webhook.OptionsFrom(wh))

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			slog.Info("webhook sent", "webhook", name, "status", resp.StatusCode, "duration", resp.Duration)
		} else {
			slog.Warn("webhook failed", "webhook", name, "error", resp.Error)
		}
	}
}
