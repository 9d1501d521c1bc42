package soak

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/amp-labs/amp-sortedlist/errors"
	"github.com/amp-labs/amp-sortedlist/logger"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Element kinds a trial can store.
const (
	ElementsInt       = "int"
	ElementsNatural   = "natural"
	ElementsCollated  = "collated"
	defaultTrials     = 8
	defaultOperations = 5000
	defaultWorkers    = 4
	defaultKeySpace   = 256
	defaultValidate   = 250
)

// ErrInvalidConfig is wrapped by every configuration problem.
var ErrInvalidConfig = stdErrors.New("invalid soak config")

// Config describes a soak run. Zero fields in a YAML file keep their
// defaults; see DefaultConfig.
type Config struct {
	// Trials is the number of independent lists exercised.
	Trials int `yaml:"trials"`
	// Operations is the number of random operations per trial.
	Operations int `yaml:"operations"`
	// Workers bounds how many trials run at once.
	Workers int `yaml:"workers"`
	// Seed seeds trial i with Seed+i, so a failing trial can be replayed alone.
	Seed uint64 `yaml:"seed"`
	// KeySpace bounds the distinct values generated, which controls how many
	// duplicates a list holds.
	KeySpace int `yaml:"key_space"`
	// ValidateEvery is how many operations pass between full invariant checks.
	ValidateEvery int `yaml:"validate_every"`
	// Elements is one of ElementsInt, ElementsNatural or ElementsCollated.
	Elements string `yaml:"elements"`
	// Locale is the BCP 47 tag used with ElementsCollated.
	Locale string `yaml:"locale"`
	// Descending runs every list in descending order.
	Descending bool `yaml:"descending"`
	// Timeout bounds the whole run; zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
	// MetricsAddr, when set, is where the CLI serves /metrics.
	MetricsAddr string `yaml:"metrics_addr"`

	Log LogConfig `yaml:"log"`
}

// LogConfig selects the log format and level of the CLI.
type LogConfig struct {
	JSON  bool   `yaml:"json"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Trials:        defaultTrials,
		Operations:    defaultOperations,
		Workers:       defaultWorkers,
		Seed:          1,
		KeySpace:      defaultKeySpace,
		ValidateEvery: defaultValidate,
		Elements:      ElementsInt,
		Locale:        "en",
		Log:           LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. An empty path yields
// the defaults. Unknown keys are rejected so typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading soak config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !stdErrors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup
// (usually os.LookupEnv): SOAK_TRIALS, SOAK_OPS, SOAK_WORKERS, SOAK_SEED,
// LOG_JSON and LOG_LEVEL.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs errors.Collection

	envInt := func(name string, dst *int) {
		if raw, ok := lookup(name); ok {
			v, err := strconv.Atoi(raw)
			if err != nil {
				errs.Add(fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, name, raw, err))

				return
			}

			*dst = v
		}
	}

	envInt("SOAK_TRIALS", &c.Trials)
	envInt("SOAK_OPS", &c.Operations)
	envInt("SOAK_WORKERS", &c.Workers)

	if raw, ok := lookup("SOAK_SEED"); ok {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs.Add(fmt.Errorf("%w: SOAK_SEED=%q: %w", ErrInvalidConfig, raw, err))
		} else {
			c.Seed = v
		}
	}

	if raw, ok := lookup("LOG_JSON"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs.Add(fmt.Errorf("%w: LOG_JSON=%q: %w", ErrInvalidConfig, raw, err))
		} else {
			c.Log.JSON = v
		}
	}

	if raw, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = raw
	}

	return errs.GetError()
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs errors.Collection

	positive := map[string]int{
		"trials":         c.Trials,
		"operations":     c.Operations,
		"workers":        c.Workers,
		"key_space":      c.KeySpace,
		"validate_every": c.ValidateEvery,
	}

	for _, name := range []string{"trials", "operations", "workers", "key_space", "validate_every"} {
		if positive[name] < 1 {
			errs.Add(fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, positive[name]))
		}
	}

	switch c.Elements {
	case ElementsInt, ElementsNatural:
	case ElementsCollated:
		if _, err := language.Parse(c.Locale); err != nil {
			errs.Add(fmt.Errorf("%w: locale %q: %w", ErrInvalidConfig, c.Locale, err))
		}
	default:
		errs.Add(fmt.Errorf("%w: unknown elements %q", ErrInvalidConfig, c.Elements))
	}

	if c.Timeout < 0 {
		errs.Add(fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig))
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs.Add(fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return errs.GetError()
}
