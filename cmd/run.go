package cmd

import (
	"github.com/gamelens/gamelens/core"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/spf13/cobra"
)

// runCmd performs the full analysis pipeline.
var runCmd = &cobra.Command{
	Use:   "run <dataset>",
	Short: "Run the full analysis pipeline on a telemetry dataset.",
	Long: `Run every analysis stage against a telemetry CSV export.

The pipeline samples the dataset, infers what each column means, detects
the game genre, checks data quality, computes gaming KPIs, recommends
dashboard charts and generates ranked insights.

Stages after sampling and schema inference are best-effort: a failure in
one stage is logged and the remaining stages still run.

Examples:
  # Analyze a dataset end to end
  gamelens run events.csv

  # Apply suggested repairs before computing metrics
  gamelens run events.csv --clean

  # Record the run in a local SQLite store
  gamelens run events.csv --run-backend sqlite

  # Export the whole result for downstream tooling
  gamelens run events.csv --output json --output-file result.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRun(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
