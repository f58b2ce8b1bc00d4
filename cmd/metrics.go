package cmd

import (
	"github.com/gamelens/gamelens/core"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd computes gaming KPIs for a dataset.
var metricsCmd = &cobra.Command{
	Use:   "metrics <dataset>",
	Short: "Compute retention, engagement, monetization and progression KPIs.",
	Long: `Compute gaming KPIs from a telemetry CSV.

Metric blocks are only computed when the required columns were detected:
retention needs users and timestamps, monetization additionally needs a
revenue column, progression needs a level column. Missing blocks are
reported rather than fabricated.

Examples:
  # Compute all available metrics
  gamelens metrics events.csv

  # Use custom retention horizons
  gamelens metrics events.csv --horizons 1,7,14,30

  # Export metrics as JSON
  gamelens metrics events.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute metrics", err)
		}
	},
}
