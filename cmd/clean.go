package cmd

import (
	"github.com/gamelens/gamelens/core"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/spf13/cobra"
)

// cleanCmd analyzes data quality and optionally applies repairs.
var cleanCmd = &cobra.Command{
	Use:   "clean <dataset>",
	Short: "Detect data-quality issues and optionally repair them.",
	Long: `Analyze a telemetry CSV for quality issues and suggest repairs.

Detects missing values, type violations, stray whitespace, outliers and
duplicate rows, and grades each issue by severity. Without --clean the
command only reports the plan; with --clean the approved repairs are
applied and the before/after quality scores are shown.

Examples:
  # Report quality issues without changing anything
  gamelens clean events.csv

  # Apply every suggested repair
  gamelens clean events.csv --clean

  # Apply only specific repair actions
  gamelens clean events.csv --clean --actions trim_whitespace,remove_duplicates`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteClean(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run cleaning", err)
		}
	},
}
