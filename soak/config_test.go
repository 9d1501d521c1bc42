package soak

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	commonErrors "github.com/amp-labs/amp-sortedlist/errors"
	"github.com/amp-labs/amp-sortedlist/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty input keeps the defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := ParseConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("fields override the defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := ParseConfig([]byte(`
trials: 3
operations: 100
elements: collated
locale: fr
descending: true
timeout: 30s
log:
  json: true
`))
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.Trials)
		assert.Equal(t, 100, cfg.Operations)
		assert.Equal(t, ElementsCollated, cfg.Elements)
		assert.Equal(t, "fr", cfg.Locale)
		assert.True(t, cfg.Descending)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.True(t, cfg.Log.JSON)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, defaultWorkers, cfg.Workers)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseConfig([]byte("trails: 3\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "soak.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 9\n"), 0o600))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Workers)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	lookup := func(env map[string]string) func(string) (string, bool) {
		return func(name string) (string, bool) {
			v, ok := env[name]

			return v, ok
		}
	}

	t.Run("overrides the matching fields", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		require.NoError(t, cfg.ApplyEnv(lookup(map[string]string{
			"SOAK_TRIALS":  "2",
			"SOAK_OPS":     "10",
			"SOAK_WORKERS": "1",
			"SOAK_SEED":    "77",
			"LOG_JSON":     "true",
			"LOG_LEVEL":    "debug",
		})))

		assert.Equal(t, 2, cfg.Trials)
		assert.Equal(t, 10, cfg.Operations)
		assert.Equal(t, 1, cfg.Workers)
		assert.Equal(t, uint64(77), cfg.Seed)
		assert.True(t, cfg.Log.JSON)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("reports every malformed value", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		err := cfg.ApplyEnv(lookup(map[string]string{
			"SOAK_TRIALS": "many",
			"SOAK_SEED":   "-1",
			"LOG_JSON":    "sometimes",
		}))
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "SOAK_TRIALS")
		assert.Contains(t, err.Error(), "SOAK_SEED")
		assert.Contains(t, err.Error(), "LOG_JSON")
		assert.Equal(t, defaultTrials, cfg.Trials)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "zero trials", mutate: func(c *Config) { c.Trials = 0 }, want: "trials must be positive"},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -1 }, want: "workers must be positive"},
		{name: "zero validate_every", mutate: func(c *Config) { c.ValidateEvery = 0 }, want: "validate_every"},
		{name: "unknown elements", mutate: func(c *Config) { c.Elements = "float" }, want: `unknown elements "float"`},
		{name: "bad locale", mutate: func(c *Config) {
			c.Elements = ElementsCollated
			c.Locale = "not a locale"
		}, want: "locale"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, want: "timeout"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, want: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := validate.Validate(t.Context(), cfg)
			if tt.want == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorIs(t, err, commonErrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
