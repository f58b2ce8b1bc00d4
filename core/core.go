// Package core has core logic for analysis, metrics and insight
// generation.
package core

import (
	"context"
	"time"

	"github.com/gamelens/gamelens/core/cleanse"
	"github.com/gamelens/gamelens/core/sample"
	"github.com/gamelens/gamelens/core/semantic"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/internal/outwriter"
	"github.com/gamelens/gamelens/internal/runstore"
	"github.com/gamelens/gamelens/internal/source"
	"github.com/gamelens/gamelens/schema"
)

// ExecutorFunc defines the function signature for executing different
// analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteRun runs the full analysis pipeline and prints the combined
// result. It serves as the main entry point for the 'run' mode.
func ExecuteRun(ctx context.Context, cfg *contract.Config) error {
	table, err := loadTable(ctx, cfg)
	if err != nil {
		return err
	}

	// Run tracking is best-effort: a broken store never blocks the
	// analysis itself.
	var store contract.RunStore
	var runID int64
	if cfg.RunBackend != schema.NoneBackend {
		store, err = runstore.NewRunStore(cfg.RunBackend, cfg.RunDBConnect)
		if err != nil {
			contract.LogWarn("run tracking initialization failed", err)
			store = nil
		}
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		configParams := map[string]any{
			"strategy": string(cfg.Strategy),
			"max_rows": cfg.MaxSampleRows,
			"clean":    cfg.AutoClean,
			"seed":     cfg.Seed,
		}
		runID, err = store.BeginRun(time.Now(), cfg.InputPath, configParams)
		if err != nil {
			contract.LogWarn("failed to begin run tracking", err)
		}
	}

	pipe := NewPipeline(cfg, nil)
	result, err := pipe.Run(ctx, table)
	if err != nil {
		return err
	}

	if store != nil && runID > 0 {
		if err := store.RecordInsights(runID, result.Insights); err != nil {
			contract.LogWarn("failed to record insights", err)
		}
		if err := store.EndRun(runID, time.Now(), result); err != nil {
			contract.LogWarn("failed to finalize run tracking", err)
		}
	}

	trimmed := *result
	trimmed.Charts = limitCharts(result.Charts, cfg.ResultLimit)
	trimmed.Insights = limitInsights(result.Insights, cfg.ResultLimit)
	return outwriter.NewOutWriter().WriteResult(&trimmed, cfg)
}

// ExecuteSchema runs schema analysis only and prints the detected
// column meanings.
func ExecuteSchema(ctx context.Context, cfg *contract.Config) error {
	table, err := loadTable(ctx, cfg)
	if err != nil {
		return err
	}
	sampled := sampleFor(cfg, table)
	analyzer := semantic.NewAnalyzer()
	meanings := analyzer.Analyze(sampled.Table)
	suggested := analyzer.SuggestedMetrics(meanings)
	return outwriter.NewOutWriter().WriteMeanings(meanings, suggested, cfg)
}

// ExecuteSample runs sampling only and prints the sampling summary.
func ExecuteSample(ctx context.Context, cfg *contract.Config) error {
	table, err := loadTable(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSample(sampleFor(cfg, table), cfg)
}

// ExecuteClean runs quality analysis and, when configured, applies the
// approved repairs.
func ExecuteClean(ctx context.Context, cfg *contract.Config) error {
	table, err := loadTable(ctx, cfg)
	if err != nil {
		return err
	}
	sampled := sampleFor(cfg, table)
	meanings := semantic.NewAnalyzer().Analyze(sampled.Table)

	cleaner := cleanse.NewCleaner()
	plan := cleaner.Analyze(sampled.Table, meanings)

	ow := outwriter.NewOutWriter()
	if err := ow.WriteCleaningPlan(&plan, cfg); err != nil {
		return err
	}
	if !cfg.AutoClean {
		return nil
	}
	result := cleaner.Clean(sampled.Table, plan, cfg.ApprovedActions)
	return ow.WriteCleaningResult(&result, cfg)
}

// ExecuteMetrics runs the metric stages and prints the computed blocks.
func ExecuteMetrics(ctx context.Context, cfg *contract.Config) error {
	result, err := GetPipelineResult(ctx, cfg)
	if err != nil {
		return err
	}
	if result.Metrics == nil {
		result.Metrics = &schema.CalculatedMetrics{}
	}
	return outwriter.NewOutWriter().WriteMetrics(result.Metrics, cfg)
}

// ExecuteCharts runs the pipeline and prints chart recommendations.
func ExecuteCharts(ctx context.Context, cfg *contract.Config) error {
	result, err := GetPipelineResult(ctx, cfg)
	if err != nil {
		return err
	}
	charts := limitCharts(result.Charts, cfg.ResultLimit)
	return outwriter.NewOutWriter().WriteCharts(charts, result.Layout, cfg)
}

// ExecuteInsights runs the pipeline and prints ranked insights.
func ExecuteInsights(ctx context.Context, cfg *contract.Config) error {
	result, err := GetPipelineResult(ctx, cfg)
	if err != nil {
		return err
	}
	insights := limitInsights(result.Insights, cfg.ResultLimit)
	return outwriter.NewOutWriter().WriteInsights(insights, cfg)
}

// ExecuteRunsList prints persisted runs from the run store.
func ExecuteRunsList(_ context.Context, cfg *contract.Config) error {
	store, err := runstore.NewRunStore(cfg.RunBackend, cfg.RunDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListRuns(cfg.ResultLimit)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRuns(records, cfg)
}

// ExecuteRunsStatus prints the run store status.
func ExecuteRunsStatus(_ context.Context, cfg *contract.Config) error {
	store, err := runstore.NewRunStore(cfg.RunBackend, cfg.RunDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRunStatus(status, cfg)
}

// ExecuteRunsClear removes all persisted runs.
func ExecuteRunsClear(_ context.Context, cfg *contract.Config) error {
	store, err := runstore.NewRunStore(cfg.RunBackend, cfg.RunDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return store.Clear()
}

// ExecuteRunsMigrate migrates the run store schema to targetVersion.
func ExecuteRunsMigrate(_ context.Context, cfg *contract.Config, targetVersion int) error {
	return runstore.Migrate(cfg.RunBackend, cfg.RunDBConnect, targetVersion)
}

// loadTable reads the configured dataset through the CSV adapter.
func loadTable(ctx context.Context, cfg *contract.Config) (*schema.Table, error) {
	return source.NewCSVAdapter().Load(ctx, cfg.InputPath)
}

// sampleFor reduces the table using the configured strategy and seed.
func sampleFor(cfg *contract.Config, table *schema.Table) *schema.SampleResult {
	return sample.NewSamplerWithSeed(cfg.Seed).Sample(table, sample.Options{
		MaxRows:         cfg.MaxSampleRows,
		Strategy:        cfg.Strategy,
		PriorityColumns: cfg.PriorityColumns,
	})
}

// GetPipelineResult loads the dataset and runs the full pipeline
// without run tracking. It backs the single-surface commands and the
// MCP tools.
func GetPipelineResult(ctx context.Context, cfg *contract.Config) (*schema.PipelineResult, error) {
	table, err := loadTable(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewPipeline(cfg, nil).Run(ctx, table)
}

func limitCharts(charts []schema.ChartRecommendation, limit int) []schema.ChartRecommendation {
	if limit > 0 && len(charts) > limit {
		return charts[:limit]
	}
	return charts
}

func limitInsights(insights []schema.Insight, limit int) []schema.Insight {
	if limit > 0 && len(insights) > limit {
		return insights[:limit]
	}
	return insights
}
