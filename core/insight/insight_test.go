package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	resp *schema.InsightResponse
	err  error
	ctx  schema.InsightContext
}

func (s *stubBackend) GenerateInsights(_ context.Context, ic schema.InsightContext) (*schema.InsightResponse, error) {
	s.ctx = ic
	return s.resp, s.err
}

func newGenerator() *Generator {
	return NewGenerator(contract.DefaultBenchmarks(), contract.DefaultMinConfidence)
}

func findInsight(insights []schema.Insight, id string) *schema.Insight {
	for i := range insights {
		if insights[i].ID == id {
			return &insights[i]
		}
	}
	return nil
}

func TestGenerateRetentionWarnings(t *testing.T) {
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.CustomGame},
		Metrics: &schema.CalculatedMetrics{
			Retention: &schema.RetentionMetrics{
				Classic: map[int]float64{1: 10, 7: 2},
			},
		},
	}

	insights := newGenerator().Generate(context.Background(), in)

	d1 := findInsight(insights, "retention-d1-low")
	require.NotNil(t, d1)
	assert.Equal(t, schema.WarningInsight, d1.Type)
	assert.Equal(t, schema.HighImpact, d1.Impact)
	assert.True(t, d1.Actionable)

	require.NotNil(t, findInsight(insights, "retention-d7-low"))
}

func TestGeneratePositiveWhenBeatingBenchmarks(t *testing.T) {
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.CustomGame},
		Metrics: &schema.CalculatedMetrics{
			Retention: &schema.RetentionMetrics{
				Classic: map[int]float64{1: 55},
			},
			Monetization: &schema.MonetizationMetrics{
				ConversionRate: 8,
				TotalUsers:     100,
				PayingUsers:    8,
				ARPU:           2.5,
				TotalRevenue:   250,
			},
		},
	}

	insights := newGenerator().Generate(context.Background(), in)

	assert.NotNil(t, findInsight(insights, "retention-d1-strong"))
	assert.NotNil(t, findInsight(insights, "conversion-strong"))
	assert.Nil(t, findInsight(insights, "retention-d1-low"))
}

func TestGenerateFunnelLeak(t *testing.T) {
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.CustomGame},
		Funnel: &schema.FunnelReport{Steps: []schema.FunnelStep{
			{Step: "install", Users: 100, Conversion: 100},
			{Step: "tutorial", Users: 90, Conversion: 90},
			{Step: "first_match", Users: 30, Conversion: 100.0 / 3.0},
		}},
	}

	insights := newGenerator().Generate(context.Background(), in)

	leak := findInsight(insights, "funnel-leak")
	require.NotNil(t, leak)
	assert.Contains(t, leak.Title, "first_match", "worst step is named")
	assert.Equal(t, schema.HighImpact, leak.Impact)
}

func TestGenerateNoFunnelLeakAboveThreshold(t *testing.T) {
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.CustomGame},
		Funnel: &schema.FunnelReport{Steps: []schema.FunnelStep{
			{Step: "a", Users: 100, Conversion: 100},
			{Step: "b", Users: 80, Conversion: 80},
		}},
	}

	insights := newGenerator().Generate(context.Background(), in)
	assert.Nil(t, findInsight(insights, "funnel-leak"))
}

func TestGenerateAnomalyRollup(t *testing.T) {
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.CustomGame},
		Anomalies: []schema.Anomaly{
			{Metric: "daily_users", Severity: schema.MediumSeverity, Description: "drop on 2025-06-03"},
			{Metric: "daily_users", Severity: schema.HighSeverity, Description: "spike on 2025-06-07"},
		},
	}

	insights := newGenerator().Generate(context.Background(), in)

	rollup := findInsight(insights, "anomaly-daily_users")
	require.NotNil(t, rollup)
	assert.Equal(t, schema.HighImpact, rollup.Impact, "worst severity in the group wins")
	assert.Len(t, rollup.Evidence, 2)
}

func TestGenerateDataQualityWarning(t *testing.T) {
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.CustomGame},
		Plan: &schema.CleaningPlan{Issues: []schema.QualityIssue{
			{Column: "revenue", Kind: schema.MissingValuesIssue, AffectedPct: 25},
			{Column: "country", Kind: schema.MissingValuesIssue, AffectedPct: 4},
		}},
	}

	insights := newGenerator().Generate(context.Background(), in)

	warning := findInsight(insights, "data-quality-missing")
	require.NotNil(t, warning)
	assert.Contains(t, warning.Description, "revenue", "worst column is named")
}

func TestGenerateTopsUpToFloor(t *testing.T) {
	in := Input{GameType: schema.GameTypeResult{GameType: schema.PuzzleGame}}

	insights := newGenerator().Generate(context.Background(), in)

	assert.GreaterOrEqual(t, len(insights), minInsights)
	assert.NotNil(t, findInsight(insights, "tip-puzzle"))
}

func TestGenerateSortsByPriority(t *testing.T) {
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.CustomGame},
		Metrics: &schema.CalculatedMetrics{
			Retention: &schema.RetentionMetrics{Classic: map[int]float64{1: 10}},
		},
	}

	insights := newGenerator().Generate(context.Background(), in)

	require.NotEmpty(t, insights)
	for i := 1; i < len(insights); i++ {
		assert.GreaterOrEqual(t, insights[i-1].Priority, insights[i].Priority)
	}
}

func TestGenerateNoDuplicateIDsOrTitles(t *testing.T) {
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.PuzzleGame},
		Metrics: &schema.CalculatedMetrics{
			Retention: &schema.RetentionMetrics{Classic: map[int]float64{1: 10, 7: 2}},
		},
	}

	insights := newGenerator().Generate(context.Background(), in)

	ids := make(map[string]struct{})
	titles := make(map[string]struct{})
	for _, ins := range insights {
		_, dup := ids[ins.ID]
		assert.False(t, dup, "duplicate id %q", ins.ID)
		ids[ins.ID] = struct{}{}

		title := schema.NormalizeTitle(ins.Title)
		_, dup = titles[title]
		assert.False(t, dup, "duplicate title %q", ins.Title)
		titles[title] = struct{}{}
	}
}

func TestGenerateBackendReceivesAggregations(t *testing.T) {
	backend := &stubBackend{}
	in := Input{
		GameType:      schema.GameTypeResult{GameType: schema.PuzzleGame},
		LevelStats:    []schema.LevelStat{{Level: 1, UsersReached: 10, CompletionRate: 80}},
		PlatformSplit: map[string]int{"ios": 6, "android": 4},
		CountrySplit:  map[string]int{"US": 7, "DE": 3},
	}

	newGenerator().WithBackend(backend).Generate(context.Background(), in)

	assert.Equal(t, in.LevelStats, backend.ctx.LevelStats)
	assert.Equal(t, in.PlatformSplit, backend.ctx.PlatformSplit)
	assert.Equal(t, in.CountrySplit, backend.ctx.CountrySplit)
}

func TestGenerateBackendFailureIsTolerated(t *testing.T) {
	g := newGenerator().WithBackend(&stubBackend{err: errors.New("service unavailable")})
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.CustomGame},
		Metrics: &schema.CalculatedMetrics{
			Retention: &schema.RetentionMetrics{Classic: map[int]float64{1: 10}},
		},
	}

	insights := g.Generate(context.Background(), in)

	assert.NotNil(t, findInsight(insights, "retention-d1-low"), "rule-based insights still produced")
}

func TestGenerateMergesBackendDrafts(t *testing.T) {
	g := newGenerator().WithBackend(&stubBackend{resp: &schema.InsightResponse{
		Insights: []schema.InsightDraft{
			{Title: "Weekend revenue skew", Type: "opportunity", Priority: 9, Confidence: 0.7},
			{Title: ""}, // dropped: no title
			{Title: "Odd fields draft", Priority: 99, Confidence: 5},
		},
	}})
	in := Input{GameType: schema.GameTypeResult{GameType: schema.CustomGame}}

	insights := g.Generate(context.Background(), in)

	skew := findInsight(insights, "external-0")
	require.NotNil(t, skew)
	assert.Equal(t, schema.OpportunityInsight, skew.Type)
	assert.Equal(t, schema.BackendSource, skew.Source)
	assert.Equal(t, schema.HighImpact, skew.Impact)

	odd := findInsight(insights, "external-2")
	require.NotNil(t, odd)
	assert.Equal(t, draftDefaultPriority, odd.Priority, "out-of-range priority reset")
	assert.InDelta(t, draftDefaultConfidence, odd.Confidence, 1e-9)
}

func TestGenerateRuleBasedWinsTitleCollision(t *testing.T) {
	g := newGenerator().WithBackend(&stubBackend{resp: &schema.InsightResponse{
		Insights: []schema.InsightDraft{
			{Title: "Day-1 retention is critically low", Priority: 3, Confidence: 0.9},
		},
	}})
	in := Input{
		GameType: schema.GameTypeResult{GameType: schema.CustomGame},
		Metrics: &schema.CalculatedMetrics{
			Retention: &schema.RetentionMetrics{Classic: map[int]float64{1: 10}},
		},
	}

	insights := g.Generate(context.Background(), in)

	d1 := findInsight(insights, "retention-d1-low")
	require.NotNil(t, d1)
	assert.Equal(t, schema.MetricSource, d1.Source)
	assert.Nil(t, findInsight(insights, "external-0"), "backend duplicate dropped")
}

func TestGenerateFiltersLowConfidence(t *testing.T) {
	g := NewGenerator(contract.DefaultBenchmarks(), 0.75).
		WithBackend(&stubBackend{resp: &schema.InsightResponse{
			Insights: []schema.InsightDraft{
				{Title: "Barely a hunch", Priority: 5, Confidence: 0.4},
			},
		}})
	in := Input{GameType: schema.GameTypeResult{GameType: schema.CustomGame}}

	insights := g.Generate(context.Background(), in)

	for _, ins := range insights {
		assert.GreaterOrEqual(t, ins.Confidence, 0.75)
		assert.NotEqual(t, "Barely a hunch", ins.Title)
	}
}
