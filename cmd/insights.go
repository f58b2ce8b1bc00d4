package cmd

import (
	"github.com/gamelens/gamelens/core"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/spf13/cobra"
)

// insightsCmd generates ranked insights for a dataset.
var insightsCmd = &cobra.Command{
	Use:   "insights <dataset>",
	Short: "Generate ranked, actionable insights from the computed metrics.",
	Long: `Generate insights by comparing the computed KPIs against industry
benchmarks and scanning for progression spikes, funnel leaks, anomalies
and data-quality problems.

Each insight carries a priority, a confidence score and, where it can be
estimated, a revenue impact. Low-confidence insights are dropped.

Examples:
  # Generate insights for a dataset
  gamelens insights events.csv

  # Keep only high-confidence insights
  gamelens insights events.csv --min-confidence 0.7

  # Export insights to Parquet for BI tools
  gamelens insights events.csv --output parquet --output-file insights.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInsights(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot generate insights", err)
		}
	},
}
