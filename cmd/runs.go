package cmd

import (
	"fmt"

	"github.com/gamelens/gamelens/core"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads minimal configuration needed for run management.
// This is used by commands that need store access without a dataset.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run-store config values
	backendStr := viper.GetString("run-backend")
	connStr := viper.GetString("run-db-connect")

	// Run management always needs a store, so empty/none falls back to
	// the local SQLite file.
	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" || backend == schema.NoneBackend {
		backend = schema.SQLiteBackend
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr

	// Output-related values used by list/status
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.ResultLimit = viper.GetInt("limit")
	cfg.Precision = viper.GetInt("precision")
	cfg.Width = viper.GetInt("width")

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsCmd focused on run history management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead
// of the full sharedSetup used by analysis commands. This avoids dataset
// loading and complex config processing for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage historical analysis runs",
	Long: `Manage the history of recorded analysis runs.

When run tracking is enabled, GameLens stores for every 'run' execution:
- Run metadata (timestamp, configuration, duration)
- Dataset shape (original and sampled row counts)
- Detected genre, quality score and insight count
- The generated insights themselves

This enables tracking how a game's KPIs and data quality evolve across
telemetry exports.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  list    - Show recorded runs
  status  - Show run tracking statistics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Show the most recent runs
  gamelens runs list

  # Export run history to Parquet for analytics
  gamelens runs list --output parquet --output-file runs.parquet`,
}

// runsListCmd lists recorded runs.
var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recorded analysis runs",
	Long: `List recorded analysis runs, newest first.

Each row shows when the run started, how long it took, the source
dataset, the sampled/original row counts, the detected genre, the data
quality score and how many insights were generated.

Examples:
  # Show the last 25 runs
  gamelens runs list

  # Export the full history for pandas/DuckDB
  gamelens runs list --limit 1000 --output parquet --output-file runs.parquet`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRunsList(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
	},
}

// runsStatusCmd shows run tracking status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show the run store backend, the number of recorded runs and the
timestamp of the most recent run.

Use this to verify run tracking is enabled and the database connection
is healthy.

Examples:
  # Check run tracking status
  gamelens runs status`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRunsStatus(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
	},
}

// runsClearCmd clears all recorded runs.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs and their insights",
	Long: `Delete every recorded run and all stored insights.

WARNING: This action cannot be undone. Consider exporting the history
first with 'gamelens runs list --output parquet'.

Examples:
  # Export before clearing
  gamelens runs list --output parquet --output-file backup.parquet
  gamelens runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRunsClear(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to clear runs", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  gamelens runs migrate

  # Migrate to specific version
  gamelens runs migrate --target-version 1

  # Rollback to initial state
  gamelens runs migrate --target-version 0`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := core.ExecuteRunsMigrate(rootCtx, cfg, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
