// Command sortedlist-soak runs randomized soak trials against sorted lists and
// exits non-zero if any trial finds a list that disagrees with its reference
// model or breaks a tree invariant.
//
// Settings come from an optional YAML file (-config), then SOAK_* and LOG_*
// environment variables, then flags.
package main

import (
	"context"
	stdErrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/amp-labs/amp-sortedlist/cli"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/soak"
	"github.com/amp-labs/amp-sortedlist/spans"
	"github.com/amp-labs/amp-sortedlist/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName     = "sortedlist-soak"
	shutdownTimeout = 5 * time.Second
	exitFailed      = 1
	exitUsage       = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.LookupEnv, os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(
	ctx context.Context, args []string, lookup func(string) (string, bool), stdout, stderr io.Writer,
) int {
	cfg, err := loadConfig(args, lookup, stderr)
	if err != nil {
		if stdErrors.Is(err, flag.ErrHelp) {
			return 0
		}

		_, _ = fmt.Fprintln(stderr, err)

		return exitUsage
	}

	environment, ok := lookup("ENVIRONMENT")
	if !ok {
		environment = "local"
	}

	telemetryConfig, err := telemetry.LoadConfigFromEnv(environment, lookup)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)

		return exitUsage
	}

	if err := telemetry.Initialize(ctx, telemetryConfig); err != nil {
		_, _ = fmt.Fprintln(stderr, err)

		return exitFailed
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	level, _ := logger.ParseLevel(cfg.Log.Level) // checked by soak.Run

	logger.ConfigureLoggingWithOptions(logger.Options{
		Subsystem:   serviceName,
		JSON:        cfg.Log.JSON,
		MinLevel:    level,
		LegacyLevel: slog.LevelInfo,
		Output:      stderr,
		Extra:       []slog.Handler{telemetry.LogHandler(serviceName)},
	})

	ctx = logger.WithSubsystem(ctx, serviceName)
	ctx = spans.WithTracer(ctx, telemetry.Tracer(serviceName))

	if cfg.MetricsAddr != "" {
		stopMetrics := serveMetrics(ctx, cfg.MetricsAddr)
		defer stopMetrics()
	}

	report, err := soak.Run(ctx, cfg)

	_, _ = fmt.Fprintln(stdout, cli.Banner(summary(cfg, report, err), cli.TerminalWidth(), cli.AlignLeft))

	if err != nil {
		logger.Get(ctx).Error("soak run failed", "error", err)

		return exitFailed
	}

	return 0
}

// loadConfig layers the YAML file, the environment and the flags that were
// set explicitly.
func loadConfig(args []string, lookup func(string) (string, bool), stderr io.Writer) (soak.Config, error) {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		path       = fs.String("config", "", "path to a YAML config file")
		trials     = fs.Int("trials", 0, "number of trials")
		operations = fs.Int("ops", 0, "operations per trial")
		workers    = fs.Int("workers", 0, "trials run at once")
		seed       = fs.Uint64("seed", 0, "seed of trial 0; trial i uses seed+i")
		keySpace   = fs.Int("key-space", 0, "number of distinct generated values")
		every      = fs.Int("validate-every", 0, "operations between full invariant checks")
		elements   = fs.String("elements", "", "element kind: int, natural or collated")
		locale     = fs.String("locale", "", "BCP 47 locale for collated elements")
		descending = fs.Bool("descending", false, "sort lists in descending order")
		timeout    = fs.Duration("timeout", 0, "limit for the whole run")
		metrics    = fs.String("metrics-addr", "", "address to serve /metrics on, e.g. :9090")
		logJSON    = fs.Bool("log-json", false, "log in JSON")
		logLevel   = fs.String("log-level", "", "log level: debug, info, warn or error")
	)

	if err := fs.Parse(args); err != nil {
		return soak.Config{}, err
	}

	if fs.NArg() > 0 {
		return soak.Config{}, fmt.Errorf("%w: unexpected arguments %s",
			soak.ErrInvalidConfig, strings.Join(fs.Args(), " "))
	}

	cfg, err := soak.LoadConfig(*path)
	if err != nil {
		return cfg, err
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trials":
			cfg.Trials = *trials
		case "ops":
			cfg.Operations = *operations
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "key-space":
			cfg.KeySpace = *keySpace
		case "validate-every":
			cfg.ValidateEvery = *every
		case "elements":
			cfg.Elements = *elements
		case "locale":
			cfg.Locale = *locale
		case "descending":
			cfg.Descending = *descending
		case "timeout":
			cfg.Timeout = *timeout
		case "metrics-addr":
			cfg.MetricsAddr = *metrics
		case "log-json":
			cfg.Log.JSON = *logJSON
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})

	return cfg, nil
}

// serveMetrics exposes the Prometheus registry until the returned function
// is called.
func serveMetrics(ctx context.Context, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			logger.Get(ctx).Error("metrics server stopped", "addr", addr, "error", err)
		}
	}()

	logger.Get(ctx).Info("serving metrics", "addr", addr)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}
}

func summary(cfg soak.Config, report soak.Report, err error) string {
	rows := []string{
		fmt.Sprintf("%s  sortedlist soak %s", cli.Status(err == nil), report.RunID),
		cli.Row("elements", cfg.Elements),
		cli.Row("trials", fmt.Sprintf("%d (%d failed)", len(report.Results), report.Failures)),
		cli.Row("operations", report.Operations),
		cli.Row("duration", report.Duration.Round(time.Millisecond)),
	}

	for _, res := range report.Failed() {
		rows = append(rows, cli.Row(fmt.Sprintf("trial %d", res.Trial),
			fmt.Sprintf("seed %d, %s: %v", res.Seed, res.FailedOp, res.Err)))
	}

	if err != nil && len(report.Failed()) == 0 {
		rows = append(rows, cli.Row("error", err))
	}

	return strings.Join(rows, "\n")
}
