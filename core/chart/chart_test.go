package chart

import (
	"testing"

	"github.com/gamelens/gamelens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func richMeanings() []schema.ColumnMeaning {
	cols := map[string]schema.SemanticType{
		"user_id":    schema.SemUserID,
		"ts":         schema.SemTimestamp,
		"session_id": schema.SemSessionID,
		"revenue":    schema.SemRevenue,
		"level":      schema.SemLevel,
		"score":      schema.SemScore,
		"platform":   schema.SemPlatform,
		"country":    schema.SemCountry,
		"step":       schema.SemFunnelStep,
	}
	out := make([]schema.ColumnMeaning, 0, len(cols))
	for col, sem := range cols {
		out = append(out, schema.ColumnMeaning{Column: col, Semantic: sem, Confidence: 0.85})
	}
	return out
}

func TestRecommendEssentials(t *testing.T) {
	recs := NewSelector().Recommend(richMeanings(), schema.CustomGame)

	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), maxRecommendations)

	byTitle := make(map[string]schema.ChartRecommendation, len(recs))
	for _, r := range recs {
		byTitle[r.Title] = r
	}

	for _, title := range []string{"Revenue Over Time", "Retention Cohorts", "Spend Segmentation", "Conversion Funnel"} {
		rec, ok := byTitle[title]
		require.True(t, ok, "essential chart %q missing", title)
		assert.True(t, rec.Essential)
		assert.Equal(t, essentialPriority, rec.Priority)
		assert.Equal(t, essentialConfidence, rec.Confidence)
	}

	// Essentials come before scored templates.
	for i := range 4 {
		assert.True(t, recs[i].Essential, "position %d should be essential", i)
	}
}

func TestRecommendSkipsChartsMissingColumns(t *testing.T) {
	meanings := []schema.ColumnMeaning{
		{Column: "user_id", Semantic: schema.SemUserID, Confidence: 0.85},
	}

	recs := NewSelector().Recommend(meanings, schema.CustomGame)

	for _, r := range recs {
		assert.NotEqual(t, "Revenue Over Time", r.Title, "no revenue column available")
		assert.NotEqual(t, "Conversion Funnel", r.Title)
	}
}

func TestRecommendNoDuplicates(t *testing.T) {
	recs := NewSelector().Recommend(richMeanings(), schema.PuzzleGame)

	seen := make(map[string]struct{})
	for _, r := range recs {
		key := r.DedupKey()
		_, dup := seen[key]
		assert.False(t, dup, "duplicate recommendation %q", key)
		seen[key] = struct{}{}
	}
}

func TestRecommendGenreBoost(t *testing.T) {
	meanings := []schema.ColumnMeaning{
		{Column: "user_id", Semantic: schema.SemUserID, Confidence: 0.85},
		{Column: "level", Semantic: schema.SemLevel, Confidence: 0.85},
		{Column: "moves", Semantic: schema.SemMoves, Confidence: 0.85},
	}

	findPriority := func(recs []schema.ChartRecommendation, title string) int {
		for _, r := range recs {
			if r.Title == title {
				return r.Priority
			}
		}
		return -1
	}

	s := NewSelector()
	neutral := findPriority(s.Recommend(meanings, schema.CustomGame), "Difficulty Curve")
	boosted := findPriority(s.Recommend(meanings, schema.PuzzleGame), "Difficulty Curve")

	require.NotEqual(t, -1, neutral)
	require.NotEqual(t, -1, boosted)
	assert.Greater(t, boosted, neutral, "puzzle genre boosts its curated charts")
	assert.LessOrEqual(t, boosted, essentialPriority)
}

func TestRecommendConfidenceAveragesColumns(t *testing.T) {
	meanings := []schema.ColumnMeaning{
		{Column: "revenue", Semantic: schema.SemRevenue, Confidence: 0.9},
		{Column: "ts", Semantic: schema.SemTimestamp, Confidence: 0.5},
	}

	recs := NewSelector().Recommend(meanings, schema.CustomGame)

	for _, r := range recs {
		if r.Title == "Total Revenue" {
			assert.InDelta(t, 0.9, r.Confidence, 1e-9)
			return
		}
	}
	t.Fatal("Total Revenue KPI not recommended")
}

func TestDashboardLayout(t *testing.T) {
	recs := NewSelector().Recommend(richMeanings(), schema.CustomGame)
	layout := NewSelector().DashboardLayout(recs)

	assert.LessOrEqual(t, len(layout.KPIs), maxKPIs)
	assert.LessOrEqual(t, len(layout.MainCharts), maxMain)
	assert.LessOrEqual(t, len(layout.SideCharts), maxSide)
	assert.LessOrEqual(t, len(layout.SecondaryCharts), maxSecondary)

	for _, rec := range layout.KPIs {
		assert.Equal(t, schema.KPIChart, rec.Kind)
	}

	// Essentials lead their buckets.
	require.NotEmpty(t, layout.MainCharts)
	assert.True(t, layout.MainCharts[0].Essential)

	// No chart appears in two buckets.
	placed := make(map[string]int)
	for _, bucket := range [][]schema.ChartRecommendation{
		layout.KPIs, layout.MainCharts, layout.SideCharts, layout.SecondaryCharts,
	} {
		for _, rec := range bucket {
			placed[rec.Title]++
		}
	}
	for title, n := range placed {
		assert.Equal(t, 1, n, "%q placed %d times", title, n)
	}
}

func TestDashboardLayoutEmpty(t *testing.T) {
	layout := NewSelector().DashboardLayout(nil)

	assert.Empty(t, layout.KPIs)
	assert.Empty(t, layout.MainCharts)
	assert.Empty(t, layout.SideCharts)
	assert.Empty(t, layout.SecondaryCharts)
}
