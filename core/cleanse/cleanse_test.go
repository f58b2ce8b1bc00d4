package cleanse

import (
	"testing"

	"github.com/gamelens/gamelens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, columns []string, rows []schema.Row) *schema.Table {
	t.Helper()
	table, err := schema.NewTable(columns, rows, "test.csv")
	require.NoError(t, err)
	return table
}

func findIssue(plan schema.CleaningPlan, col string, kind schema.IssueKind) *schema.QualityIssue {
	for i := range plan.Issues {
		if plan.Issues[i].Column == col && plan.Issues[i].Kind == kind {
			return &plan.Issues[i]
		}
	}
	return nil
}

func TestAnalyzeMissingValues(t *testing.T) {
	rows := make([]schema.Row, 10)
	for i := range rows {
		rows[i] = schema.Row{"user_id": "u1", "country": "US"}
	}
	// 3 of 10 user ids missing (30%, high), 1 of 10 countries (10%, medium).
	rows[0]["user_id"] = nil
	rows[1]["user_id"] = ""
	rows[2]["user_id"] = "   "
	rows[3]["country"] = nil

	table := mustTable(t, []string{"user_id", "country"}, rows)
	meanings := []schema.ColumnMeaning{
		{Column: "user_id", Semantic: schema.SemUserID},
		{Column: "country", Semantic: schema.SemCountry},
	}

	plan := NewCleaner().Analyze(table, meanings)

	userIssue := findIssue(plan, "user_id", schema.MissingValuesIssue)
	require.NotNil(t, userIssue)
	assert.Equal(t, schema.HighSeverity, userIssue.Severity)
	assert.Equal(t, 3, userIssue.AffectedRows)
	assert.Equal(t, schema.RemoveRowsAction, userIssue.Action, "identity columns cannot be imputed")

	countryIssue := findIssue(plan, "country", schema.MissingValuesIssue)
	require.NotNil(t, countryIssue)
	assert.Equal(t, schema.MediumSeverity, countryIssue.Severity)
	assert.Equal(t, schema.FillModeAction, countryIssue.Action)
}

func TestAnalyzeTypeViolations(t *testing.T) {
	table := mustTable(t, []string{"revenue"}, []schema.Row{
		{"revenue": 1.99},
		{"revenue": -5.0},
		{"revenue": "abc"},
		{"revenue": nil},
	})
	meanings := []schema.ColumnMeaning{{Column: "revenue", Semantic: schema.SemRevenue}}

	plan := NewCleaner().Analyze(table, meanings)

	issue := findIssue(plan, "revenue", schema.TypeViolationIssue)
	require.NotNil(t, issue)
	assert.Equal(t, 2, issue.AffectedRows, "negative and non-numeric count, missing does not")
	assert.Equal(t, schema.ParseNumberAction, issue.Action)
	assert.NotEmpty(t, issue.Examples)
}

func TestAnalyzeWhitespace(t *testing.T) {
	table := mustTable(t, []string{"country"}, []schema.Row{
		{"country": " US "},
		{"country": "DE"},
	})

	plan := NewCleaner().Analyze(table, nil)

	issue := findIssue(plan, "country", schema.WhitespaceIssue)
	require.NotNil(t, issue)
	assert.Equal(t, 1, issue.AffectedRows)
	assert.Equal(t, schema.LowSeverity, issue.Severity)
	assert.Equal(t, schema.TrimWhitespaceAction, issue.Action)
}

func TestAnalyzeOutliers(t *testing.T) {
	rows := make([]schema.Row, 30)
	for i := range rows {
		rows[i] = schema.Row{"score": 100.0}
	}
	rows[0]["score"] = 101.0
	rows[1]["score"] = 99.0
	rows[29]["score"] = 100000.0

	table := mustTable(t, []string{"score"}, rows)
	plan := NewCleaner().Analyze(table, nil)

	issue := findIssue(plan, "score", schema.OutlierIssue)
	require.NotNil(t, issue)
	assert.Equal(t, 1, issue.AffectedRows)
	assert.Equal(t, schema.CapOutliersAction, issue.Action)
}

func TestAnalyzeSkipsOutliersOnSmallColumns(t *testing.T) {
	table := mustTable(t, []string{"score"}, []schema.Row{
		{"score": 1.0}, {"score": 2.0}, {"score": 9999.0},
	})
	plan := NewCleaner().Analyze(table, nil)

	assert.Nil(t, findIssue(plan, "score", schema.OutlierIssue))
}

func TestAnalyzeDuplicates(t *testing.T) {
	table := mustTable(t, []string{"user_id", "event"}, []schema.Row{
		{"user_id": "u1", "event": "login"},
		{"user_id": "u1", "event": "login"},
		{"user_id": "u2", "event": "login"},
	})

	plan := NewCleaner().Analyze(table, nil)

	issue := findIssue(plan, schema.TableWideColumn, schema.DuplicateRowsIssue)
	require.NotNil(t, issue)
	assert.Equal(t, 1, issue.AffectedRows)
	assert.Equal(t, schema.RemoveDuplicatesAction, issue.Action)
}

func TestQualityScore(t *testing.T) {
	c := NewCleaner()

	t.Run("clean cells score full marks", func(t *testing.T) {
		rows := []schema.Row{{"a": "x", "b": 1.0}}
		assert.InDelta(t, 100.0, c.QualityScore(rows, []string{"a", "b"}), 1e-9)
	})

	t.Run("untrimmed and missing cells are discounted", func(t *testing.T) {
		rows := []schema.Row{
			{"a": "x", "b": " y "},
			{"a": nil, "b": "z"},
		}
		// (1 + 0.8 + 0 + 1) / 4 * 100
		assert.InDelta(t, 70.0, c.QualityScore(rows, []string{"a", "b"}), 1e-9)
	})

	t.Run("empty table scores zero", func(t *testing.T) {
		assert.Zero(t, c.QualityScore(nil, nil))
	})
}

func TestCleanAppliesApprovedActionsOnly(t *testing.T) {
	table := mustTable(t, []string{"user_id", "country"}, []schema.Row{
		{"user_id": "u1", "country": " US "},
		{"user_id": nil, "country": "DE"},
		{"user_id": "u3", "country": "DE"},
	})
	meanings := []schema.ColumnMeaning{{Column: "user_id", Semantic: schema.SemUserID}}

	c := NewCleaner()
	plan := c.Analyze(table, meanings)

	result := c.Clean(table, plan, []schema.RepairAction{schema.TrimWhitespaceAction})

	assert.Equal(t, 0, result.RowsRemoved, "row removal was not approved")
	assert.Equal(t, 1, result.RowsModified)
	assert.Equal(t, []schema.RepairAction{schema.TrimWhitespaceAction}, result.Applied)
	assert.Equal(t, "US", result.Table.Rows[0]["country"])
	assert.Equal(t, 3, result.Table.RowCount())
}

func TestCleanEmptyApprovedMeansAll(t *testing.T) {
	table := mustTable(t, []string{"user_id", "country"}, []schema.Row{
		{"user_id": "u1", "country": " US "},
		{"user_id": nil, "country": "DE"},
		{"user_id": "u1", "country": " US "},
	})
	meanings := []schema.ColumnMeaning{{Column: "user_id", Semantic: schema.SemUserID}}

	c := NewCleaner()
	plan := c.Analyze(table, meanings)
	result := c.Clean(table, plan, nil)

	assert.Greater(t, result.RowsRemoved, 0)
	assert.Greater(t, result.ScoreAfter, result.ScoreBefore)
	for _, r := range result.Table.Rows {
		assert.False(t, schema.IsMissing(r["user_id"]))
	}
}

func TestCleanDoesNotMutateOriginal(t *testing.T) {
	table := mustTable(t, []string{"country"}, []schema.Row{
		{"country": " US "},
	})

	c := NewCleaner()
	plan := c.Analyze(table, nil)
	result := c.Clean(table, plan, nil)

	assert.Equal(t, " US ", table.Rows[0]["country"], "source table stays untouched")
	assert.Equal(t, "US", result.Table.Rows[0]["country"])
}

func TestCleanParsesNumbers(t *testing.T) {
	table := mustTable(t, []string{"revenue"}, []schema.Row{
		{"revenue": "1.99"},
		{"revenue": "abc"},
		{"revenue": 2.5},
	})
	meanings := []schema.ColumnMeaning{{Column: "revenue", Semantic: schema.SemRevenue}}

	c := NewCleaner()
	plan := c.Analyze(table, meanings)
	require.NotNil(t, findIssue(plan, "revenue", schema.TypeViolationIssue))

	result := c.Clean(table, plan, []schema.RepairAction{schema.ParseNumberAction})

	assert.Equal(t, 1.99, result.Table.Rows[0]["revenue"], "parseable strings are coerced")
	assert.Equal(t, "abc", result.Table.Rows[1]["revenue"], "unparseable values stay as-is")
	assert.Equal(t, 1, result.RowsModified)
}
