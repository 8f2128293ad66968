package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peakScenario = `name: peak
description: "Peak height and time"
numeric: f64
cases:
  - name: peak
    inputs: { H: 20, T: 10 }
    outputs: [V, G]
    expect: { V: 4, G: -0.4 }
`

func TestTest_HarnessScenarios(t *testing.T) {
	out, err := execute(t, "test", filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ end_to_end\n")
	assert.Contains(t, out, "✓ degenerate\n")
	assert.Contains(t, out, "Test Summary: 3 passed, 0 failed, 3 total")
}

func TestTest_Filter(t *testing.T) {
	out, err := execute(t, "test", "--format", "json", "--filter", "end_*",
		filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Passed)
}

func TestTest_GoldenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "peak.yaml"), peakScenario)

	out, err := execute(t, "test", "--update", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ peak (golden updated)")

	golden := filepath.Join(dir, "golden", "peak.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name": "peak"`)

	_, err = execute(t, "test", dir)
	require.NoError(t, err)

	writeFile(t, golden, "{}\n")
	out, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Golden file mismatch")
}

func TestTest_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "wrong.yaml"), `name: wrong
description: "Wrong impulse"
cases:
  - name: peak
    inputs: { H: 20, T: 10 }
    outputs: [V]
    expect: { V: 5 }
`)

	out, err := execute(t, "test", "--format", "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Contains(t, resp.Data.Scenarios[0].Errors, "peak/resolver: Impulse = 4, expected 5")
}

func TestTest_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), "name: broken\n")

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTest_NoScenarios(t *testing.T) {
	out, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTest_MissingDirectory(t *testing.T) {
	_, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "peak.golden"),
		goldenFilePath(filepath.Join("scenarios", "peak.yaml")))
}
