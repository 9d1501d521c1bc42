package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/amp-labs/amp-sortedlist/soak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := values[name]

		return v, ok
	}
}

func TestLoadConfigLayers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "soak.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trials: 5\nworkers: 3\nelements: natural\n"), 0o600))

	var stderr bytes.Buffer

	lookup := env(map[string]string{"SOAK_TRIALS": "6", "LOG_LEVEL": "debug"})

	cfg, err := loadConfig([]string{"-config", path}, lookup, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Trials)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, soak.ElementsNatural, cfg.Elements)
	assert.Equal(t, "debug", cfg.Log.Level)

	cfg, err = loadConfig([]string{"-config", path, "-trials", "7", "-descending", "-log-level", "warn"}, lookup, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Trials)
	assert.True(t, cfg.Descending)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = loadConfig([]string{"extra"}, lookup, &stderr)
	require.ErrorIs(t, err, soak.ErrInvalidConfig)
}

func TestRunExitCodes(t *testing.T) { //nolint:paralleltest
	small := []string{"-trials", "2", "-ops", "200", "-workers", "2", "-key-space", "20", "-log-level", "warn"}

	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		want     int
		contains string
	}{
		{name: "help", args: []string{"-h"}, want: 0},
		{name: "unknown flag", args: []string{"-bogus"}, want: exitUsage},
		{name: "malformed environment", args: small, env: map[string]string{"SOAK_OPS": "lots"}, want: exitUsage},
		{name: "malformed telemetry environment", args: small, env: map[string]string{"OTEL_ENABLED": "maybe"}, want: exitUsage},
		{name: "passing run", args: small, want: 0, contains: "PASS"},
		{
			name:     "collated run",
			args:     append(slices.Clone(small), "-elements", "collated", "-locale", "de"),
			want:     0,
			contains: "collated",
		},
		{name: "invalid config", args: append(slices.Clone(small), "-workers", "0"), want: exitFailed, contains: "FAIL"},
		{
			name:     "metrics server",
			args:     append(slices.Clone(small), "-metrics-addr", "127.0.0.1:0"),
			want:     0,
			contains: "operations:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(t.Context(), tt.args, env(tt.env), &stdout, &stderr)
			assert.Equal(t, tt.want, code, "stderr: %s", stderr.String())

			if tt.contains != "" {
				assert.Contains(t, stdout.String(), tt.contains)
			}
		})
	}
}
