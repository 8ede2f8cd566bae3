package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when LAB_ENV_FILE is not set
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config  *Config
	envFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	envFile := os.Getenv("LAB_ENV_FILE")
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	return &Loader{
		config:  NewConfig(),
		envFile: envFile,
	}
}

// WithEnvFile sets the dotenv file to read; "" disables it
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Fill unset environment variables from the dotenv file, if present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadEnvFile never overrides variables already set in the process environment.
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	if _, err := os.Stat(l.envFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		return &ConfigError{Field: "env_file", Message: err.Error()}
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	// Simulation overrides
	FetchMinDelay   *time.Duration
	FetchMaxDelay   *time.Duration
	SaveDelay       *time.Duration
	SaveFailureRate *float64

	// Exercise overrides
	HistoryLimit *int
	TaxRate      *float64

	// Server and display overrides
	Addr  *string
	Plain *bool

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}

	if overrides.FetchMinDelay != nil {
		config.Fetch.MinDelay = *overrides.FetchMinDelay
	}
	if overrides.FetchMaxDelay != nil {
		config.Fetch.MaxDelay = *overrides.FetchMaxDelay
	}
	if overrides.SaveDelay != nil {
		config.Portal.SaveDelay = *overrides.SaveDelay
	}
	if overrides.SaveFailureRate != nil {
		config.Portal.SaveFailureRate = *overrides.SaveFailureRate
	}

	if overrides.HistoryLimit != nil {
		config.Calculator.HistoryLimit = *overrides.HistoryLimit
	}
	if overrides.TaxRate != nil {
		config.Cart.TaxRate = *overrides.TaxRate
	}

	if overrides.Addr != nil {
		config.Server.Addr = *overrides.Addr
	}
	if overrides.Plain != nil {
		config.Display.Plain = *overrides.Plain
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
