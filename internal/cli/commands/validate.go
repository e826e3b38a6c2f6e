package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/wmslog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a wmslog configuration file without running analysis.

Checks:
  - YAML syntax
  - Timezone name
  - Log level and output format
  - Chart format and viewport size
  - Webhook URLs, triggers and encodings`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	vp := cfg.Charts.Viewport
	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Timezone:  %s\n", cfg.Location())
	fmt.Fprintf(out, "  Log level: %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  Output:    %s\n", cfg.Output)
	if cfg.Charts.Dir != "" {
		fmt.Fprintf(out, "  Charts:    %s (%s)\n", cfg.Charts.Dir, cfg.Charts.Format)
	} else {
		fmt.Fprintf(out, "  Charts:    disabled\n")
	}
	fmt.Fprintf(out, "  Viewport:  %gx%g, plot area %gx%g\n", vp.Width, vp.Height, vp.InnerWidth(), vp.InnerHeight())

	if len(cfg.Webhooks) > 0 {
		fmt.Fprintf(out, "\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			name := wh.Name
			if name == "" {
				name = wh.URL
			}
			fmt.Fprintf(out, "  %d. %s [%s, %s, %s]\n", i+1, name, wh.Trigger, wh.Encoding, wh.Timeout)
		}
	}

	return nil
}
