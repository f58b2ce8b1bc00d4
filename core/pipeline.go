package core

import (
	"context"
	"fmt"
	"time"

	"github.com/gamelens/gamelens/core/chart"
	"github.com/gamelens/gamelens/core/cleanse"
	"github.com/gamelens/gamelens/core/insight"
	"github.com/gamelens/gamelens/core/metric"
	"github.com/gamelens/gamelens/core/sample"
	"github.com/gamelens/gamelens/core/semantic"
	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"
)

// Pipeline wires the analysis stages together. Every collaborator is
// injected at construction so each stage can be replaced or tested in
// isolation.
type Pipeline struct {
	cfg       *contract.Config
	sampler   *sample.Sampler
	analyzer  *semantic.Analyzer
	detector  *Detector
	cleaner   *cleanse.Cleaner
	calc      *metric.Calculator
	selector  *chart.Selector
	generator *insight.Generator
}

// NewPipeline builds the standard pipeline from config. The insight
// backend is optional; pass nil to run rule-based insights only.
func NewPipeline(cfg *contract.Config, backend contract.InsightBackend) *Pipeline {
	gen := insight.NewGenerator(cfg.Benchmarks, cfg.MinConfidence)
	if backend != nil {
		gen = gen.WithBackend(backend)
	}
	return &Pipeline{
		cfg:      cfg,
		sampler:  sample.NewSamplerWithSeed(cfg.Seed),
		analyzer: semantic.NewAnalyzer(),
		detector: NewDetector(),
		cleaner:  cleanse.NewCleaner(),
		calc: metric.NewCalculator(metric.Options{
			RetentionHorizons: cfg.RetentionHorizons,
			LTVHorizonDays:    cfg.LTVHorizonDays,
		}),
		selector:  chart.NewSelector(),
		generator: gen,
	}
}

// Run executes the full analysis over a loaded table. Sampling and
// schema analysis are load-bearing and abort the run on failure; every
// later stage is isolated so one misbehaving stage degrades the result
// instead of killing it.
func (p *Pipeline) Run(ctx context.Context, table *schema.Table) (*schema.PipelineResult, error) {
	start := time.Now()
	result := &schema.PipelineResult{}

	sr := p.sampler.Sample(table, sample.Options{
		MaxRows:         p.cfg.MaxSampleRows,
		Strategy:        p.cfg.Strategy,
		PriorityColumns: p.cfg.PriorityColumns,
	})
	if sr == nil || sr.Table == nil {
		return nil, fmt.Errorf("sampling produced no rows")
	}
	result.Sample = sr
	working := sr.Table

	result.Meanings = p.analyzer.Analyze(working)
	if len(result.Meanings) == 0 {
		return nil, fmt.Errorf("schema analysis produced no column meanings")
	}

	runStage("game type detection", func() {
		gt := p.detector.Detect(result.Meanings)
		result.GameType = &gt
	})
	if result.GameType == nil {
		gt := schema.GameTypeResult{GameType: schema.CustomGame, Confidence: 0}
		result.GameType = &gt
	}

	runStage("quality analysis", func() {
		plan := p.cleaner.Analyze(working, result.Meanings)
		result.Quality = &plan
	})
	if p.cfg.AutoClean && result.Quality != nil {
		runStage("cleaning", func() {
			cr := p.cleaner.Clean(working, *result.Quality, p.cfg.ApprovedActions)
			result.Cleaning = &cr
			if cr.Table != nil {
				working = cr.Table
			}
		})
	}

	runStage("metric calculation", func() {
		result.Metrics = p.calc.Calculate(working, result.Meanings)
	})
	runStage("anomaly detection", func() {
		result.Anomalies = p.calc.DetectAnomalies(working, result.Meanings)
	})
	runStage("cohort matrix", func() {
		result.Cohorts = p.calc.CohortMatrix(working, result.Meanings)
	})
	runStage("funnel analysis", func() {
		result.Funnel = p.calc.Funnel(working, result.Meanings)
	})

	runStage("chart selection", func() {
		result.Charts = p.selector.Recommend(result.Meanings, result.GameType.GameType)
		layout := p.selector.DashboardLayout(result.Charts)
		result.Layout = &layout
	})

	runStage("insight generation", func() {
		result.Insights = p.generator.Generate(ctx, insight.Input{
			GameType:      *result.GameType,
			Meanings:      result.Meanings,
			Metrics:       result.Metrics,
			Anomalies:     result.Anomalies,
			Funnel:        result.Funnel,
			Plan:          result.Quality,
			Snapshot:      snapshot(working, result.Metrics, result.Meanings),
			LevelStats:    levelStats(result.Metrics),
			PlatformSplit: valueSplit(working, result.Meanings, schema.SemPlatform),
			CountrySplit:  valueSplit(working, result.Meanings, schema.SemCountry),
		})
	})

	result.Stats = schema.RunStats{
		OriginalRows: sr.OriginalRows,
		SampledRows:  sr.SampledRows,
		CleanedRows:  working.RowCount(),
		Elapsed:      time.Since(start),
		BackendUsed:  p.generator != nil && result.Insights != nil && hasBackendInsight(result.Insights),
	}
	return result, nil
}

// runStage runs one optional stage, converting a panic into a warning
// so the rest of the result survives.
func runStage(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			contract.LogWarn(name+" stage failed", fmt.Errorf("%v", r))
		}
	}()
	fn()
}

// snapshot builds the small numeric summary handed to the external
// insight backend, including the dataset's observed date range.
func snapshot(table *schema.Table, metrics *schema.CalculatedMetrics, meanings []schema.ColumnMeaning) schema.DataSnapshot {
	snap := schema.DataSnapshot{RowCount: table.RowCount()}
	if metrics != nil && metrics.Monetization != nil {
		snap.TotalUsers = metrics.Monetization.TotalUsers
		snap.TotalRevenue = metrics.Monetization.TotalRevenue
	}
	if m := schema.FindMeaning(meanings, schema.SemTimestamp); m != nil {
		for _, row := range table.Rows {
			ts, ok := schema.AsTime(row[m.Column])
			if !ok || ts.IsZero() {
				continue
			}
			if snap.DateStart.IsZero() || ts.Before(snap.DateStart) {
				snap.DateStart = ts
			}
			if ts.After(snap.DateEnd) {
				snap.DateEnd = ts
			}
		}
	}
	return snap
}

// levelStats lifts the per-level progression rows out of the metric
// block, when present.
func levelStats(metrics *schema.CalculatedMetrics) []schema.LevelStat {
	if metrics == nil || metrics.Progression == nil {
		return nil
	}
	return metrics.Progression.Levels
}

// valueSplit counts rows per distinct value of the column carrying the
// given semantic, or nil when the dataset has no such column.
func valueSplit(table *schema.Table, meanings []schema.ColumnMeaning, sem schema.SemanticType) map[string]int {
	m := schema.FindMeaning(meanings, sem)
	if m == nil {
		return nil
	}
	split := make(map[string]int)
	for _, row := range table.Rows {
		v := row[m.Column]
		if v == nil {
			continue
		}
		split[schema.AsString(v)]++
	}
	if len(split) == 0 {
		return nil
	}
	return split
}

func hasBackendInsight(insights []schema.Insight) bool {
	for _, ins := range insights {
		if ins.Source == schema.BackendSource {
			return true
		}
	}
	return false
}
