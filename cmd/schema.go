package cmd

import (
	"github.com/gamelens/gamelens/core"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/spf13/cobra"
)

// schemaCmd performs semantic schema inference only.
var schemaCmd = &cobra.Command{
	Use:   "schema <dataset>",
	Short: "Infer the business meaning of every column.",
	Long: `Inspect a telemetry CSV and report what each column most likely means.

Each column gets a primitive type (number, string, date, ...), a semantic
type (user_id, revenue, timestamp, ...) and a confidence score. Columns
that cannot be classified are reported as unknown rather than guessed.

Examples:
  # Inspect the schema of a dataset
  gamelens schema events.csv

  # Export the detected meanings as JSON
  gamelens schema events.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSchema(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run schema analysis", err)
		}
	},
}
