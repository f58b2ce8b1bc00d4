package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		[]string{"user_id", "revenue"},
		[]Row{
			{"user_id": "u1", "revenue": 1.99},
			{"user_id": "u2", "revenue": 0.0},
		},
		"test.csv",
	)
	require.NoError(t, err)
	return table
}

func TestNewTableValidation(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		table := testTable(t)
		assert.Equal(t, 2, table.RowCount())
		assert.Equal(t, "test.csv", table.Source)
	})

	t.Run("empty rows rejected", func(t *testing.T) {
		_, err := NewTable([]string{"a"}, nil, "")
		assert.ErrorIs(t, err, ErrEmptyTable)
	})

	t.Run("empty columns rejected", func(t *testing.T) {
		_, err := NewTable(nil, []Row{{"a": 1}}, "")
		assert.ErrorIs(t, err, ErrEmptyTable)
	})

	t.Run("short row rejected", func(t *testing.T) {
		_, err := NewTable([]string{"a", "b"}, []Row{{"a": 1}}, "")
		assert.Error(t, err)
	})

	t.Run("unknown column rejected", func(t *testing.T) {
		_, err := NewTable([]string{"a"}, []Row{{"b": 1}}, "")
		assert.Error(t, err)
	})
}

func TestCloneRowsIsDeep(t *testing.T) {
	table := testTable(t)
	cloned := table.CloneRows()
	cloned[0]["revenue"] = 99.0

	assert.Equal(t, 1.99, table.Rows[0]["revenue"], "original rows must not be mutated")
}

func TestWithRows(t *testing.T) {
	table := testTable(t)
	sub := table.WithRows(table.Rows[:1])

	assert.Equal(t, 1, sub.RowCount())
	assert.Equal(t, table.Columns, sub.Columns)
	assert.Equal(t, table.Source, sub.Source)
}

func TestColumnValues(t *testing.T) {
	table := testTable(t)
	values := table.ColumnValues("user_id")
	assert.Equal(t, []any{"u1", "u2"}, values)
}

func TestFindMeaning(t *testing.T) {
	meanings := []ColumnMeaning{
		{Column: "uid", Semantic: SemUserID},
		{Column: "rev", Semantic: SemRevenue},
	}

	found := FindMeaning(meanings, SemRevenue)
	assert.NotNil(t, found)
	assert.Equal(t, "rev", found.Column)

	assert.Nil(t, FindMeaning(meanings, SemLevel))
}

func TestSemanticSet(t *testing.T) {
	meanings := []ColumnMeaning{
		{Column: "uid", Semantic: SemUserID},
		{Column: "junk", Semantic: SemUnknown},
	}

	set := SemanticSet(meanings)
	assert.Contains(t, set, SemUserID)
	assert.NotContains(t, set, SemUnknown, "unknown never counts as present")
}

func TestSampleResultRatio(t *testing.T) {
	r := &SampleResult{OriginalRows: 200, SampledRows: 50}
	assert.InDelta(t, 0.25, r.Ratio(), 1e-9)

	empty := &SampleResult{}
	assert.Equal(t, 1.0, empty.Ratio())
}

func TestImpactAndSeverityRank(t *testing.T) {
	assert.Greater(t, ImpactRank(HighImpact), ImpactRank(MediumImpact))
	assert.Greater(t, ImpactRank(MediumImpact), ImpactRank(LowImpact))
	assert.Greater(t, SeverityRank(HighSeverity), SeverityRank(LowSeverity))
}

func TestChartDedupKey(t *testing.T) {
	a := ChartRecommendation{Kind: LineChart, Title: "Revenue Over Time"}
	b := ChartRecommendation{Kind: LineChart, Title: "Revenue Over Time"}
	c := ChartRecommendation{Kind: BarChart, Title: "Revenue Over Time"}

	assert.Equal(t, a.DedupKey(), b.DedupKey())
	assert.NotEqual(t, a.DedupKey(), c.DedupKey())
}
