package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func lookup(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]

		return v, ok
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		env              map[string]string
		expectedEndpoint string
	}{
		{
			name:             "Kubernetes environment detected",
			env:              map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"},
			expectedEndpoint: kubernetesEndpoint,
		},
		{
			name:             "local environment",
			env:              map[string]string{},
			expectedEndpoint: "",
		},
		{
			name: "custom endpoint overrides the cluster default",
			env: map[string]string{
				"KUBERNETES_SERVICE_HOST":     "10.0.0.1",
				"OTEL_EXPORTER_OTLP_ENDPOINT": "http://custom-collector:4318",
			},
			expectedEndpoint: "http://custom-collector:4318",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			config, err := LoadConfigFromEnv("dev", lookup(test.env))
			require.NoError(t, err)
			assert.Equal(t, test.expectedEndpoint, config.Endpoint)
		})
	}
}

func TestLoadConfigFromEnvValues(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		config, err := LoadConfigFromEnv("test", lookup(nil))
		require.NoError(t, err)

		assert.False(t, config.Enabled)
		assert.False(t, config.Logs)
		assert.Equal(t, defaultServiceName, config.ServiceName)
		assert.Equal(t, defaultServiceVersion, config.ServiceVersion)
		assert.Equal(t, "test", config.Environment)
		assert.Equal(t, defaultTimeout, config.Timeout)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()

		config, err := LoadConfigFromEnv("prod", lookup(map[string]string{
			"OTEL_ENABLED":               "true",
			"OTEL_LOGS_ENABLED":          "1",
			"OTEL_SERVICE_NAME":          "soak-nightly",
			"OTEL_SERVICE_VERSION":       "2.1.0",
			"OTEL_EXPORTER_OTLP_TIMEOUT": "250ms",
		}))
		require.NoError(t, err)

		assert.True(t, config.Enabled)
		assert.True(t, config.Logs)
		assert.Equal(t, "soak-nightly", config.ServiceName)
		assert.Equal(t, "2.1.0", config.ServiceVersion)
		assert.Equal(t, 250*time.Millisecond, config.Timeout)
	})

	t.Run("malformed values", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFromEnv("prod", lookup(map[string]string{
			"OTEL_ENABLED":               "yes please",
			"OTEL_EXPORTER_OTLP_TIMEOUT": "soon",
		}))
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "OTEL_ENABLED")
		assert.Contains(t, err.Error(), "OTEL_EXPORTER_OTLP_TIMEOUT")
	})
}

func TestInitialize(t *testing.T) { //nolint:paralleltest
	t.Run("disabled installs nothing", func(t *testing.T) {
		require.NoError(t, Initialize(t.Context(), &Config{Enabled: false, Endpoint: "http://127.0.0.1:4318"}))
		assert.Nil(t, LogHandler("soak"))
		require.NoError(t, Shutdown(t.Context()))
	})

	t.Run("missing endpoint installs nothing", func(t *testing.T) {
		require.NoError(t, Initialize(t.Context(), &Config{Enabled: true}))
		assert.Nil(t, LogHandler("soak"))
	})

	t.Run("enabled installs the providers", func(t *testing.T) {
		previous := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(previous) })

		require.NoError(t, Initialize(t.Context(), &Config{
			ServiceName: "soak",
			Environment: "test",
			Endpoint:    "http://127.0.0.1:4318",
			Enabled:     true,
			Logs:        true,
			Timeout:     time.Second,
		}))

		_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
		assert.True(t, ok)
		assert.NotNil(t, Tracer("soak"))
		assert.NotNil(t, LogHandler("soak"))

		ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
		defer cancel()

		require.NoError(t, Shutdown(ctx))
		assert.Nil(t, LogHandler("soak"))
		require.NoError(t, Shutdown(ctx))
	})
}
