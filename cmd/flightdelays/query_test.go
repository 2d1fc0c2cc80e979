package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/flightdelays/internal/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("FLIGHTDELAYS_DATABASE__URI", "sqlite://"+dbtest.NewStoreFile(t))
	t.Setenv("FLIGHTDELAYS_OBSERVABILITY__LOGGING__LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestQuery_PrintsRecords(t *testing.T) {
	out, err := runCLI(t, "query", "--date", "01/01/2015")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)
	assert.Equal(t, float64(1), records[0]["id"])
}

func TestQuery_RouteArrowIsNotEscaped(t *testing.T) {
	out, err := runCLI(t, "query", "--delays-routes", "true")
	require.NoError(t, err)
	assert.Contains(t, out, `"flight_route": "LAX → JFK"`)
}

func TestQuery_Precedence(t *testing.T) {
	out, err := runCLI(t, "query", "--airline", "Delta Air Lines Inc.", "--id", "3")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, float64(3), records[0]["id"])
}

func TestQuery_ErrorBody(t *testing.T) {
	tests := []struct {
		args    []string
		message string
	}{
		{args: []string{"query"}, message: "Bad request no parameters given!"},
		{args: []string{"query", "--airport", "us"}, message: "Bad Request for airport!"},
		{args: []string{"query", "--all-airlines", "false"}, message: "Bad request for delays by airline!"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.Error(t, err)

			var body []string
			require.NoError(t, json.Unmarshal([]byte(out), &body))
			assert.Equal(t, []string{"error", tt.message}, body)
		})
	}
}

func TestQuery_DatabaseFlagOverridesEnv(t *testing.T) {
	out, err := runCLI(t, "query", "--id", "1", "--database", "mysql://nowhere")
	require.Error(t, err)

	var body []string
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "error", body[0])
	assert.Contains(t, body[1], "unsupported database uri")
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "routes-with-location", flagName("routes_with_location"))
	assert.Equal(t, "id", flagName("id"))
}
