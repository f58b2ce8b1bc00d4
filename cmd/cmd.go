// Package cmd defines the command-line interface for gamelens.
package cmd

import (
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("max-rows", contract.DefaultMaxSampleRows, "Maximum number of rows to sample before analysis")
	rootCmd.PersistentFlags().String("strategy", string(schema.SmartSample), "Sampling strategy: head, tail, random, systematic, stratified or smart")
	rootCmd.PersistentFlags().String("priority-columns", "", "Comma-separated columns whose rows sampling should prefer to keep")
	rootCmd.PersistentFlags().Int64("seed", contract.DefaultSeed, "Random seed for deterministic sampling")
	rootCmd.PersistentFlags().Bool("clean", false, "Apply suggested data repairs before computing metrics")
	rootCmd.PersistentFlags().String("actions", "", "Comma-separated repair actions to approve (empty or 'all' approves every suggestion)")
	rootCmd.PersistentFlags().String("horizons", "", "Comma-separated retention horizons in days (e.g. '1,7,30')")
	rootCmd.PersistentFlags().Int("ltv-horizon", 30, "Projection horizon in days for LTV estimation")
	rootCmd.PersistentFlags().Float64("min-confidence", contract.DefaultMinConfidence, "Drop insights below this confidence (0..1)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("run-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
