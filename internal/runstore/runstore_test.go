package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gamelens/gamelens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*Store)
}

func sampleResult() *schema.PipelineResult {
	return &schema.PipelineResult{
		GameType: &schema.GameTypeResult{GameType: schema.PuzzleGame, Confidence: 0.8},
		Quality:  &schema.CleaningPlan{QualityScore: 92.5},
		Insights: []schema.Insight{
			{ID: "retention-d1-low", Type: schema.WarningInsight, Category: "retention", Title: "Day-1 retention is critically low", Priority: 9, Impact: schema.HighImpact, Confidence: 0.8, Source: schema.MetricSource},
			{ID: "tip-puzzle", Type: schema.NeutralInsight, Category: "general", Title: "Watch the difficulty curve", Priority: 2, Impact: schema.LowImpact, Confidence: 0.8, Source: schema.TemplateSource},
		},
		Stats: schema.RunStats{OriginalRows: 5000, SampledRows: 1000},
	}
}

func TestSQLiteRunLifecycle(t *testing.T) {
	store := newSQLiteStore(t)

	start := time.Now().UTC().Truncate(time.Millisecond)
	runID, err := store.BeginRun(start, "events.csv", map[string]any{"strategy": "smart"})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	result := sampleResult()
	require.NoError(t, store.RecordInsights(runID, result.Insights))
	require.NoError(t, store.EndRun(runID, start.Add(750*time.Millisecond), result))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	record := runs[0]
	assert.Equal(t, runID, record.RunID)
	assert.Equal(t, "events.csv", record.Source)
	assert.Equal(t, 5000, record.OriginalRows)
	assert.Equal(t, 1000, record.SampledRows)
	assert.Equal(t, "puzzle", record.GameType)
	assert.InDelta(t, 92.5, record.QualityScore, 1e-9)
	assert.Equal(t, 2, record.InsightCount)
	assert.Equal(t, int64(750), record.DurationMs)
	assert.Contains(t, record.ConfigParams, `"strategy":"smart"`)
	assert.True(t, record.StartTime.Equal(start))
	assert.False(t, record.EndTime.IsZero())
}

func TestSQLiteListOrdersNewestFirst(t *testing.T) {
	store := newSQLiteStore(t)

	first, err := store.BeginRun(time.Now().UTC(), "a.csv", nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Now().UTC(), "b.csv", nil)
	require.NoError(t, err)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].RunID)
	assert.Equal(t, first, runs[1].RunID)

	limited, err := store.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second, limited[0].RunID)
}

func TestSQLiteUnfinishedRun(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.BeginRun(time.Now().UTC(), "pending.csv", nil)
	require.NoError(t, err)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].EndTime.IsZero(), "unfinished run has no end time")
	assert.Zero(t, runs[0].DurationMs)
}

func TestSQLiteStatusAndClear(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, 0, status.RunCount)
	assert.True(t, status.LastRunAt.IsZero())

	start := time.Now().UTC()
	runID, err := store.BeginRun(start, "events.csv", nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordInsights(runID, sampleResult().Insights))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.RunCount)
	assert.False(t, status.LastRunAt.IsZero())

	require.NoError(t, store.Clear())

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.RunCount)
}

func TestNoneBackendIsNoOp(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), "events.csv", nil)
	require.NoError(t, err)
	assert.Zero(t, runID)

	require.NoError(t, store.RecordInsights(runID, sampleResult().Insights))
	require.NoError(t, store.EndRun(runID, time.Now(), nil))
	require.NoError(t, store.Clear())

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
}

func TestUnsupportedBackend(t *testing.T) {
	_, err := NewRunStore("oracle", "")
	assert.ErrorContains(t, err, "unsupported backend")
}
