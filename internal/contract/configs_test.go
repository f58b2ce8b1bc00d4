package contract

import (
	"testing"

	"github.com/gamelens/gamelens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAndValidateDefaults(t *testing.T) {
	var cfg Config
	err := ProcessAndValidate(&cfg, &ConfigRawInput{InputPathStr: "data.csv"})

	require.NoError(t, err)
	assert.Equal(t, "data.csv", cfg.InputPath)
	assert.Equal(t, DefaultMaxSampleRows, cfg.MaxSampleRows)
	assert.Equal(t, schema.SmartSample, cfg.Strategy)
	assert.Equal(t, int64(DefaultSeed), cfg.Seed)
	assert.Equal(t, DefaultRetentionHorizons, cfg.RetentionHorizons)
	assert.Equal(t, 30, cfg.LTVHorizonDays)
	assert.Equal(t, DefaultMinConfidence, cfg.MinConfidence)
	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.RunBackend)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultBenchmarks(), cfg.Benchmarks)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input ConfigRawInput
	}{
		{"invalid strategy", ConfigRawInput{Strategy: "fibonacci"}},
		{"invalid output mode", ConfigRawInput{Output: "xml"}},
		{"invalid run backend", ConfigRawInput{RunBackend: "oracle"}},
		{"mysql without connection string", ConfigRawInput{RunBackend: "mysql"}},
		{"invalid action", ConfigRawInput{Actions: "remove_rows,frobnicate"}},
		{"invalid horizon", ConfigRawInput{Horizons: "1,zero"}},
		{"negative horizon", ConfigRawInput{Horizons: "-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.InputPathStr = "data.csv"
			var cfg Config
			assert.Error(t, ProcessAndValidate(&cfg, &tt.input))
		})
	}
}

func TestProcessAndValidateOverrides(t *testing.T) {
	var cfg Config
	err := ProcessAndValidate(&cfg, &ConfigRawInput{
		InputPathStr:    "events.csv",
		MaxRows:         500,
		Strategy:        "STRATIFIED",
		PriorityColumns: "user_id, country",
		Horizons:        "1,14",
		Limit:           MaxResultLimit + 5000,
		Output:          "json",
		Color:           "no",
		RunBackend:      "postgresql",
		RunDBConnect:    "postgres://localhost/gamelens",
	})

	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxSampleRows)
	assert.Equal(t, schema.StratifiedSample, cfg.Strategy)
	assert.Equal(t, []string{"user_id", "country"}, cfg.PriorityColumns)
	assert.Equal(t, []int{1, 14}, cfg.RetentionHorizons)
	assert.Equal(t, MaxResultLimit, cfg.ResultLimit, "limit is clamped")
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.False(t, cfg.UseColors)
	assert.Equal(t, schema.PostgreSQLBackend, cfg.RunBackend)
}

func TestParseApprovedActions(t *testing.T) {
	t.Run("empty means all", func(t *testing.T) {
		actions, err := ParseApprovedActions("")
		require.NoError(t, err)
		assert.Nil(t, actions)
	})

	t.Run("all means all", func(t *testing.T) {
		actions, err := ParseApprovedActions("ALL")
		require.NoError(t, err)
		assert.Nil(t, actions)
	})

	t.Run("explicit list", func(t *testing.T) {
		actions, err := ParseApprovedActions("trim_whitespace, remove_duplicates")
		require.NoError(t, err)
		assert.Equal(t, []schema.RepairAction{schema.TrimWhitespaceAction, schema.RemoveDuplicatesAction}, actions)
	})

	t.Run("unknown action rejected", func(t *testing.T) {
		_, err := ParseApprovedActions("reticulate_splines")
		assert.Error(t, err)
	})
}

func TestParseHorizons(t *testing.T) {
	horizons, err := ParseHorizons("1, 7,30")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 7, 30}, horizons)

	_, err = ParseHorizons("1,,7")
	assert.Error(t, err)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "root@tcp(localhost)/gamelens"))
}

func TestConfigCloneIsDeep(t *testing.T) {
	orig := &Config{
		InputPath:         "data.csv",
		PriorityColumns:   []string{"user_id"},
		ApprovedActions:   []schema.RepairAction{schema.TrimWhitespaceAction},
		RetentionHorizons: []int{1, 7},
	}

	clone := orig.Clone()
	clone.PriorityColumns[0] = "changed"
	clone.RetentionHorizons[0] = 99
	clone.InputPath = "other.csv"

	assert.Equal(t, "user_id", orig.PriorityColumns[0])
	assert.Equal(t, 1, orig.RetentionHorizons[0])
	assert.Equal(t, "data.csv", orig.InputPath)
}

func TestParseBoolish(t *testing.T) {
	assert.True(t, parseBoolish("yes", false))
	assert.True(t, parseBoolish("TRUE", false))
	assert.False(t, parseBoolish("off", true))
	assert.False(t, parseBoolish("0", true))
	assert.True(t, parseBoolish("", true), "empty falls back to the default")
	assert.False(t, parseBoolish("maybe", false))
}
