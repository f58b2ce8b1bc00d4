package cmd

import (
	"github.com/gamelens/gamelens/core"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/spf13/cobra"
)

// sampleCmd performs sampling only.
var sampleCmd = &cobra.Command{
	Use:   "sample <dataset>",
	Short: "Reduce a dataset to a working sample and report coverage.",
	Long: `Sample a telemetry CSV down to a bounded working set.

The smart strategy keeps whole user histories together so retention and
funnel metrics stay meaningful; the other strategies trade fidelity for
speed. Sampling is deterministic for a given seed.

Examples:
  # Sample with the default smart strategy
  gamelens sample events.csv

  # Take a plain random sample of at most 5000 rows
  gamelens sample events.csv --strategy random --max-rows 5000

  # Keep rows that have values in specific columns
  gamelens sample events.csv --priority-columns revenue,level`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSample(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run sampling", err)
		}
	},
}
