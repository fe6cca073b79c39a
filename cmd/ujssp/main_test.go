package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmelineperneel/UJSSP/instance"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func datFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.dat")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const jobsDat = "2\n100 10 0.5\n100 60 0.5\n"

func TestSolve_Jobs(t *testing.T) {
	out, err := execute(t, "solve", datFile(t, jobsDat), "--format", "out")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "40", lines[0])
	assert.Equal(t, "2", lines[2])
	assert.Equal(t, "1\t100\t10\t0.5", lines[3])
	assert.Equal(t, "0\t100\t60\t0.5", lines[4])
}

func TestDP_Jobs(t *testing.T) {
	out, err := execute(t, "dp", datFile(t, jobsDat), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"arith": "dp"`)
	assert.Contains(t, out, `"objective": 40`)
}

func TestSolve_FactorsWithMetrics(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "ujssp.prom")
	outPath := filepath.Join(dir, "result.yaml")

	_, err := execute(t, "solve", datFile(t, "3\n6\n3\n2\n"),
		"--mode", "factors", "--format", "yaml", "-o", outPath, "--metrics-file", metricsPath)
	require.NoError(t, err)

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "found: true")

	b, err = os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), `ujssp_runs_total{mode="multiplicative",state="done"} 1`)
}

func TestGenerate_RoundTrips(t *testing.T) {
	out, err := execute(t, "generate", "--kind", "factors", "--yes", "-n", "6", "--ub", "30", "--seed", "7")
	require.NoError(t, err)
	in, err := instance.Read(strings.NewReader(out), instance.Multiplicative)
	require.NoError(t, err)
	assert.Equal(t, 6, in.Len())

	out, err = execute(t, "generate", "-n", "4", "--method", "mid")
	require.NoError(t, err)
	in, err = instance.Read(strings.NewReader(out), instance.Additive)
	require.NoError(t, err)
	assert.Equal(t, 4, in.Len())
}

func TestConfig_PrintsFlags(t *testing.T) {
	out, err := execute(t, "config", "--workers", "6", "--time-limit", "30s")
	require.NoError(t, err)
	assert.Contains(t, out, "workers: 6")
	assert.Contains(t, out, "time_limit: 30s")
}

func TestErrors(t *testing.T) {
	_, err := execute(t, "solve", datFile(t, jobsDat), "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, "solve", filepath.Join(t.TempDir(), "missing.dat"))
	assert.Error(t, err)

	_, err = execute(t, "dp", datFile(t, "2\n6\n3\n"))
	assert.ErrorIs(t, err, instance.ErrMalformed)
}
