package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"goresid/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Diagnostics DiagnosticsConfig `validate:"required"`
	Plot        PlotConfig        `validate:"required"`
	Report      ReportConfig      `validate:"required"`
	Server      ServerConfig      `validate:"required"`
	Registry    string            `validate:"required"`
	LogLevel    string            `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// DiagnosticsConfig holds the per-run defaults
type DiagnosticsConfig struct {
	Alpha         float64 `validate:"gt=0,lt=1"`
	SequenceOrder string  `validate:"oneof=residual observation"`
}

// PlotConfig holds figure rendering settings
type PlotConfig struct {
	Format string `validate:"oneof=png svg"`
	Width  int    `validate:"gte=100,lte=8000"`
	Height int    `validate:"gte=100,lte=8000"`
}

// ReportConfig selects the report writer
type ReportConfig struct {
	Format string `validate:"oneof=text markdown html json"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr              string `validate:"required"`
	MaxConcurrentRuns int    `validate:"gte=1,lte=1024"`
}

var validate = validator.New()

// Default returns the configuration used when no variables are set.
func Default() *Config {
	return &Config{
		Diagnostics: DiagnosticsConfig{Alpha: 0.05, SequenceOrder: "residual"},
		Plot:        PlotConfig{Format: "png", Width: 800, Height: 600},
		Report:      ReportConfig{Format: "text"},
		Server:      ServerConfig{Addr: ":8080", MaxConcurrentRuns: 4},
		Registry:    "models.yaml",
		LogLevel:    "INFO",
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads configuration through getenv, so callers can supply a map.
func LoadFrom(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}
	config := Default()

	config.Diagnostics.Alpha = env.float("DIAG_ALPHA", config.Diagnostics.Alpha)
	config.Diagnostics.SequenceOrder = env.str("DIAG_SEQUENCE_ORDER", config.Diagnostics.SequenceOrder)
	config.Plot.Format = strings.ToLower(env.str("DIAG_PLOT_FORMAT", config.Plot.Format))
	config.Plot.Width = env.int("DIAG_PLOT_WIDTH", config.Plot.Width)
	config.Plot.Height = env.int("DIAG_PLOT_HEIGHT", config.Plot.Height)
	config.Report.Format = strings.ToLower(env.str("DIAG_REPORT_FORMAT", config.Report.Format))
	config.Server.Addr = env.str("DIAG_HTTP_ADDR", config.Server.Addr)
	config.Server.MaxConcurrentRuns = env.int("DIAG_MAX_CONCURRENT_RUNS", config.Server.MaxConcurrentRuns)
	config.Registry = env.str("DIAG_REGISTRY", config.Registry)
	config.LogLevel = strings.ToUpper(env.str("LOG_LEVEL", config.LogLevel))

	if env.err != nil {
		return nil, env.err
	}
	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks struct tags and reports the first failing field.
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.ConfigInvalid(fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

// envReader parses variables and keeps the first parse failure.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) str(key, defaultValue string) string {
	if value := strings.TrimSpace(e.getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e *envReader) int(key string, defaultValue int) int {
	value := strings.TrimSpace(e.getenv(key))
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		e.fail(key, value)
		return defaultValue
	}
	return intValue
}

func (e *envReader) float(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(e.getenv(key))
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		e.fail(key, value)
		return defaultValue
	}
	return floatValue
}

func (e *envReader) fail(key, value string) {
	if e.err == nil {
		e.err = errors.ConfigInvalid(fmt.Sprintf("%s=%q is not a number", key, value))
	}
}
