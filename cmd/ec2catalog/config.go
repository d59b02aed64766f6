package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config controls one catalog run. Values come from an optional YAML file,
// then EC2CATALOG_* environment variables override.
type Config struct {
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// LogFormat is "console" or "json".
	LogFormat string `yaml:"log_format"`
	// EndpointsFile points at an endpoints catalog to resolve region
	// descriptions from; empty means the embedded snapshot.
	EndpointsFile string `yaml:"endpoints_file"`
	// Output is the destination path for the catalog JSON; "-" is stdout.
	Output string `yaml:"output"`
	// SkipSpot disables the spot price pass.
	SkipSpot bool `yaml:"skip_spot"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "console",
		Output:    "-",
	}
}

// loadConfig reads the YAML file at path (when non-empty) over the defaults
// and applies environment overrides.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if v := os.Getenv("EC2CATALOG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("EC2CATALOG_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("EC2CATALOG_ENDPOINTS_FILE"); v != "" {
		cfg.EndpointsFile = v
	}
	if v := os.Getenv("EC2CATALOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("EC2CATALOG_SKIP_SPOT"); v != "" {
		cfg.SkipSpot = strings.EqualFold(v, "true") || v == "1"
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("invalid log format %q (want console or json)", cfg.LogFormat)
	}
	return cfg, nil
}

// newLogger builds the process logger from the config.
func newLogger(cfg Config) zerolog.Logger {
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	var logger zerolog.Logger
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
