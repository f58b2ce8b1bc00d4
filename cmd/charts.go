package cmd

import (
	"github.com/gamelens/gamelens/core"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/spf13/cobra"
)

// chartsCmd recommends dashboard charts for a dataset.
var chartsCmd = &cobra.Command{
	Use:   "charts <dataset>",
	Short: "Recommend dashboard charts for the detected schema and genre.",
	Long: `Recommend charts a telemetry dashboard should show for this dataset.

Recommendations are ranked by priority and confidence. Essential charts
(revenue trend, retention cohorts, spend segmentation, conversion
funnel) are always proposed when their columns exist; genre-specific
charts are boosted based on the detected game type.

Examples:
  # Recommend charts for a dataset
  gamelens charts events.csv

  # Keep only the top five recommendations
  gamelens charts events.csv --limit 5`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCharts(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot recommend charts", err)
		}
	},
}
