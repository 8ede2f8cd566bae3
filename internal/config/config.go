package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the lab exercises
type Config struct {
	Database    DatabaseConfig
	Fetch       FetchConfig
	Portal      PortalConfig
	Calculator  CalculatorConfig
	Cart        CartConfig
	Server      ServerConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"LAB_DB_DIR"`
	Filename       string        `env:"LAB_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"LAB_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"LAB_DB_DIR_PERMISSIONS"`
}

// FetchConfig bounds the simulated latency of the user directory fetch
type FetchConfig struct {
	MinDelay time.Duration `env:"LAB_FETCH_MIN_DELAY"`
	MaxDelay time.Duration `env:"LAB_FETCH_MAX_DELAY"`
}

// PortalConfig controls the simulated portal save
type PortalConfig struct {
	SaveDelay       time.Duration `env:"LAB_SAVE_DELAY"`
	SaveFailureRate float64       `env:"LAB_SAVE_FAILURE_RATE"`
}

// CalculatorConfig holds calculator settings
type CalculatorConfig struct {
	HistoryLimit int `env:"LAB_HISTORY_LIMIT"`
}

// CartConfig holds shopping cart settings
type CartConfig struct {
	TaxRate float64 `env:"LAB_TAX_RATE"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `env:"LAB_SERVER_ADDR"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Plain bool `env:"LAB_DISPLAY_PLAIN"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"LAB_APP_TIMEOUT"`
	Verbose bool          `env:"LAB_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".labkit")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "labkit.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Fetch: FetchConfig{
			MinDelay: 1500 * time.Millisecond,
			MaxDelay: 3000 * time.Millisecond,
		},
		Portal: PortalConfig{
			SaveDelay:       1800 * time.Millisecond,
			SaveFailureRate: 0.1,
		},
		Calculator: CalculatorConfig{
			HistoryLimit: 10,
		},
		Cart: CartConfig{
			TaxRate: 0.05,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Display: DisplayConfig{
			Plain: false,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored and the current value is kept.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("LAB_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("LAB_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("LAB_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("LAB_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Fetch configuration
	if d := os.Getenv("LAB_FETCH_MIN_DELAY"); d != "" {
		c.Fetch.MinDelay = ParseDurationWithFallback(d, c.Fetch.MinDelay)
	}
	if d := os.Getenv("LAB_FETCH_MAX_DELAY"); d != "" {
		c.Fetch.MaxDelay = ParseDurationWithFallback(d, c.Fetch.MaxDelay)
	}

	// Portal configuration
	if d := os.Getenv("LAB_SAVE_DELAY"); d != "" {
		c.Portal.SaveDelay = ParseDurationWithFallback(d, c.Portal.SaveDelay)
	}
	if rate := os.Getenv("LAB_SAVE_FAILURE_RATE"); rate != "" {
		c.Portal.SaveFailureRate = ParseFloatWithFallback(rate, c.Portal.SaveFailureRate)
	}

	// Calculator configuration
	if limit := os.Getenv("LAB_HISTORY_LIMIT"); limit != "" {
		c.Calculator.HistoryLimit = ParseIntWithFallback(limit, c.Calculator.HistoryLimit)
	}

	// Cart configuration
	if rate := os.Getenv("LAB_TAX_RATE"); rate != "" {
		c.Cart.TaxRate = ParseFloatWithFallback(rate, c.Cart.TaxRate)
	}

	// Server configuration
	if addr := os.Getenv("LAB_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	// Display configuration
	if plain := os.Getenv("LAB_DISPLAY_PLAIN"); plain != "" {
		c.Display.Plain = ParseBoolWithFallback(plain, c.Display.Plain)
	}

	// Application configuration
	if timeout := os.Getenv("LAB_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("LAB_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate fetch configuration
	if c.Fetch.MinDelay < 0 {
		return &ConfigError{Field: "fetch.min_delay", Message: "minimum delay cannot be negative"}
	}
	if c.Fetch.MaxDelay < c.Fetch.MinDelay {
		return &ConfigError{Field: "fetch.max_delay", Message: "maximum delay must not be less than minimum delay"}
	}

	// Validate portal configuration
	if c.Portal.SaveDelay < 0 {
		return &ConfigError{Field: "portal.save_delay", Message: "save delay cannot be negative"}
	}
	if c.Portal.SaveFailureRate < 0 || c.Portal.SaveFailureRate > 1 {
		return &ConfigError{Field: "portal.save_failure_rate", Message: "failure rate must be between 0 and 1"}
	}

	// Validate calculator configuration
	if c.Calculator.HistoryLimit < 1 {
		return &ConfigError{Field: "calculator.history_limit", Message: "history limit must be at least 1"}
	}

	// Validate cart configuration
	if c.Cart.TaxRate < 0 {
		return &ConfigError{Field: "cart.tax_rate", Message: "tax rate cannot be negative"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseFloatWithFallback parses a float string with a fallback value
func ParseFloatWithFallback(s string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return fallback
}
