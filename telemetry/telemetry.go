// Package telemetry exports soak traces and logs over OTLP/HTTP. Nothing is
// exported unless OTEL_ENABLED is true and an endpoint is known.
package telemetry

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultServiceName    = "sortedlist-soak"
	defaultServiceVersion = "1.0.0"
	defaultTimeout        = 5 * time.Second
	kubernetesEndpoint    = "http://opentelemetry-collector.opentelemetry.svc.cluster.local:4318"
)

// ErrInvalidConfig is wrapped by malformed OTEL_* variables.
var ErrInvalidConfig = stdErrors.New("invalid telemetry config")

var (
	mu             sync.Mutex
	tracerProvider *sdktrace.TracerProvider
	loggerProvider *sdklog.LoggerProvider
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Enabled        bool
	// Logs also ships log records, through LogHandler.
	Logs    bool
	Timeout time.Duration
}

// LoadConfigFromEnv reads OTEL_ENABLED, OTEL_LOGS_ENABLED, OTEL_SERVICE_NAME,
// OTEL_SERVICE_VERSION, OTEL_EXPORTER_OTLP_ENDPOINT and
// OTEL_EXPORTER_OTLP_TIMEOUT through lookup (usually os.LookupEnv). Inside
// Kubernetes the endpoint defaults to the cluster collector.
func LoadConfigFromEnv(runningEnv string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		ServiceName:    defaultServiceName,
		ServiceVersion: defaultServiceVersion,
		Environment:    runningEnv,
		Timeout:        defaultTimeout,
	}

	if _, ok := lookup("KUBERNETES_SERVICE_HOST"); ok {
		cfg.Endpoint = kubernetesEndpoint
	}

	var errs []error

	parseBool := func(name string, dst *bool) {
		if raw, ok := lookup(name); ok {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, name, raw))

				return
			}

			*dst = v
		}
	}

	parseBool("OTEL_ENABLED", &cfg.Enabled)
	parseBool("OTEL_LOGS_ENABLED", &cfg.Logs)

	if v, ok := lookup("OTEL_SERVICE_NAME"); ok && v != "" {
		cfg.ServiceName = v
	}

	if v, ok := lookup("OTEL_SERVICE_VERSION"); ok && v != "" {
		cfg.ServiceVersion = v
	}

	if v, ok := lookup("OTEL_EXPORTER_OTLP_ENDPOINT"); ok && v != "" {
		cfg.Endpoint = v
	}

	if raw, ok := lookup("OTEL_EXPORTER_OTLP_TIMEOUT"); ok {
		v, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: OTEL_EXPORTER_OTLP_TIMEOUT=%q", ErrInvalidConfig, raw))
		} else {
			cfg.Timeout = v
		}
	}

	if len(errs) > 0 {
		return nil, stdErrors.Join(errs...)
	}

	return cfg, nil
}

// Initialize installs the OTLP trace exporter as the global tracer provider
// and, when config.Logs is set, prepares the log bridge returned by
// LogHandler. It does nothing when telemetry is disabled.
func Initialize(ctx context.Context, config *Config) error {
	if !config.Enabled {
		slog.Debug("OpenTelemetry is disabled")

		return nil
	}

	if config.Endpoint == "" {
		slog.Warn("OpenTelemetry endpoint not configured, telemetry will be disabled")

		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if config.Logs {
		logExporter, err := otlploghttp.New(ctx,
			otlploghttp.WithEndpointURL(config.Endpoint),
			otlploghttp.WithTimeout(config.Timeout),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP log exporter: %w", err)
		}

		loggerProvider = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
			sdklog.WithResource(res),
		)
	}

	slog.Info("OpenTelemetry initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"endpoint", config.Endpoint,
		"logs", config.Logs,
	)

	return nil
}

// Tracer returns a tracer from the global provider, which is a no-op until
// Initialize installs an exporter.
func Tracer(name string) trace.Tracer { //nolint:ireturn
	return otel.Tracer(name)
}

// LogHandler returns a slog handler that ships records over OTLP, or nil when
// log export is not initialized.
func LogHandler(name string) slog.Handler {
	mu.Lock()
	defer mu.Unlock()

	if loggerProvider == nil {
		return nil
	}

	return otelslog.NewHandler(name, otelslog.WithLoggerProvider(loggerProvider))
}

// Shutdown flushes and stops the providers installed by Initialize.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	var errs []error

	if tracerProvider != nil {
		slog.Debug("Shutting down OpenTelemetry tracer provider")

		errs = append(errs, tracerProvider.Shutdown(ctx))
		tracerProvider = nil
	}

	if loggerProvider != nil {
		errs = append(errs, loggerProvider.Shutdown(ctx))
		loggerProvider = nil
	}

	return stdErrors.Join(errs...)
}
