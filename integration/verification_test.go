//go:build basic

// Package integration contains integration tests for gamelens.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGamelensCLISmoke runs each analysis command against a known
// dataset and checks for the expected sections in the output.
func TestGamelensCLISmoke(t *testing.T) {
	dataset := writeSampleDataset(t)
	gamelensPath := getGamelensBinary()

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "schema", args: []string{"schema", dataset}, want: "user_id"},
		{name: "sample", args: []string{"sample", dataset}, want: "strategy"},
		{name: "clean", args: []string{"clean", dataset}, want: "Quality score"},
		{name: "metrics", args: []string{"metrics", dataset}, want: "Retention"},
		{name: "charts", args: []string{"charts", dataset}, want: "Revenue Over Time"},
		{name: "insights", args: []string{"insights", dataset}, want: "1."},
		{name: "run", args: []string{"run", dataset}, want: "Analysis completed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command(gamelensPath, tc.args...)
			var out bytes.Buffer
			cmd.Stdout = &out
			cmd.Stderr = &out
			err := cmd.Run()
			require.NoError(t, err, "output: %s", out.String())
			assert.Contains(t, out.String(), tc.want)
		})
	}
}

// TestGamelensJSONOutput verifies JSON export parses for the run command.
func TestGamelensJSONOutput(t *testing.T) {
	dataset := writeSampleDataset(t)
	gamelensPath := getGamelensBinary()

	cmd := exec.Command(gamelensPath, "run", dataset, "--output", "json")
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\"meanings\"")
	assert.Contains(t, out.String(), "\"stats\"")
}
