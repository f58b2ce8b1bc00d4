package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, "user_id, revenue ,active\nu1,1.99,true\nu2,0,false\n")

	table, err := NewCSVAdapter().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"user_id", "revenue", "active"}, table.Columns, "header cells are trimmed")
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, path, table.Source)

	assert.Equal(t, "u1", table.Rows[0]["user_id"])
	assert.Equal(t, 1.99, table.Rows[0]["revenue"])
	assert.Equal(t, true, table.Rows[0]["active"])
	assert.Equal(t, 0.0, table.Rows[1]["revenue"])
	assert.Equal(t, false, table.Rows[1]["active"])
}

func TestLoadShortRecordsPadWithNil(t *testing.T) {
	path := writeCSV(t, "a,b,c\n1,2\n")

	table, err := NewCSVAdapter().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, 1.0, table.Rows[0]["a"])
	assert.Nil(t, table.Rows[0]["c"])
}

func TestLoadMalformedRecordFails(t *testing.T) {
	// An unterminated quote must surface as an error, never as a
	// silently truncated table.
	path := writeCSV(t, "user_id,score\nu1,10\n\"u2,20\nu3,30\n")

	_, err := NewCSVAdapter().Load(context.Background(), path)

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read record")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewCSVAdapter().Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, err, "failed to open dataset")
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeCSV(t, "a,b\n")

	_, err := NewCSVAdapter().Load(context.Background(), path)
	assert.ErrorContains(t, err, "invalid dataset")
}

func TestLoadCancelledContext(t *testing.T) {
	path := writeCSV(t, "a\n1\n2\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVAdapter().Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"empty cell", "", nil},
		{"number", "12.5", 12.5},
		{"integer", "7", 7.0},
		{"padded number stays string", " 12 ", " 12 "},
		{"bool true", "true", true},
		{"bool false", "FALSE", false},
		{"plain string", "hello", "hello"},
		{"whitespace only stays string", "   ", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.in))
		})
	}
}
