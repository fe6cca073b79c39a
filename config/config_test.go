package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmelineperneel/UJSSP/config"
	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/solver"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ujssp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func apply(t *testing.T, cfg config.Config, mode instance.Mode) solver.Options {
	t.Helper()
	opts, err := cfg.SolverOptions(mode)
	require.NoError(t, err)
	o := solver.DefaultOptions(mode)
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	o := apply(t, cfg, instance.Multiplicative)
	assert.Equal(t, solver.Arbitrary, o.Precision)
	assert.Equal(t, solver.DefaultMultiplicativeTimeLimit, o.TimeLimit)

	o = apply(t, cfg, instance.Additive)
	assert.Equal(t, solver.Native, o.Precision)
	assert.Zero(t, o.TimeLimit)
}

func TestLoad_Layers(t *testing.T) {
	path := writeFile(t, `
mode: factors
precision: native
workers: 4
time_limit: 90s
speedups: false
order: asc
`)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "factors", cfg.Mode)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 90*time.Second, cfg.TimeLimit)

	mode, err := cfg.InstanceMode()
	require.NoError(t, err)
	assert.Equal(t, instance.Multiplicative, mode)
	order, err := cfg.SortOrder()
	require.NoError(t, err)
	assert.Equal(t, instance.OrderAscending, order)

	o := apply(t, cfg, mode)
	assert.Equal(t, solver.Native, o.Precision)
	assert.Equal(t, 90*time.Second, o.TimeLimit)
	assert.Equal(t, 4, o.Workers)
	assert.False(t, o.Speedups)

	// Environment beats the file.
	t.Setenv("UJSSP_WORKERS", "3")
	cfg, err = config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)

	// Changed flags beat the environment; unchanged ones do not count.
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int(config.FlagName("workers"), 1, "")
	fs.String(config.FlagName("format"), "text", "")
	require.NoError(t, fs.Parse([]string{"--workers=8"}))
	cfg, err = config.Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoad_UnsetFlagKeepsModeTimeLimit(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Duration(config.FlagName("time_limit"), 0, "")
	require.NoError(t, fs.Parse(nil))

	cfg, err := config.Load("", fs)
	require.NoError(t, err)
	o := apply(t, cfg, instance.Multiplicative)
	assert.Equal(t, solver.DefaultMultiplicativeTimeLimit, o.TimeLimit)

	require.NoError(t, fs.Parse([]string{"--time-limit=0s"}))
	cfg, err = config.Load("", fs)
	require.NoError(t, err)
	o = apply(t, cfg, instance.Multiplicative)
	assert.Zero(t, o.TimeLimit)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorIs(t, err, config.ErrRead)

	tests := map[string]string{
		"workers":   "workers: 0\n",
		"bits":      "bits: 32\n",
		"mode":      "mode: sums\n",
		"order":     "order: sideways\n",
		"precision": "precision: quad\n",
		"tolerance": "match_tolerance: -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, body), nil)
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	want := config.Default().WithTimeLimit(time.Minute)
	want.Workers = 2

	var buf bytes.Buffer
	require.NoError(t, want.WriteYAML(&buf))
	got, err := config.Load(writeFile(t, buf.String()), nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
