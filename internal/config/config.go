package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store drivers
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds all configuration options for the taskboard server and client
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Client     ClientConfig
	Validation ValidationConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `env:"TASKBOARD_HOST"`
	Port            int           `env:"PORT"`
	FrontendOrigin  string        `env:"FRONTEND_ORIGIN"`
	ShutdownTimeout time.Duration `env:"TASKBOARD_SHUTDOWN_TIMEOUT"`
	BodyLimit       int64
}

// DatabaseConfig holds store configuration for both backends
type DatabaseConfig struct {
	Driver         string        `env:"TASKBOARD_DB_DRIVER"`
	Dir            string        `env:"TASKBOARD_DB_DIR"`
	Filename       string        `env:"TASKBOARD_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TASKBOARD_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"TASKBOARD_DB_DIR_PERMISSIONS"`
	MongoURI       string        `env:"MONGO_URI"`
	MongoDatabase  string        `env:"TASKBOARD_MONGO_DATABASE"`
}

// ClientConfig holds configuration for the API client used by the TUI and CLI
type ClientConfig struct {
	BaseURL string        `env:"NEXT_PUBLIC_API_BASE_URL"`
	Timeout time.Duration `env:"TASKBOARD_CLIENT_TIMEOUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `env:"TASKBOARD_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `env:"TASKBOARD_VALIDATION_DESCRIPTION_MAX"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `env:"TASKBOARD_LOG_LEVEL"`
	Format string `env:"TASKBOARD_LOG_FORMAT"`
	Debug  bool   `env:"TASKBOARD_DEBUG"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Server: ServerConfig{
			Port:            5000,
			ShutdownTimeout: 15 * time.Second,
			BodyLimit:       100 << 10,
		},
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            filepath.Join(homeDir, ".taskboard"),
			Filename:       "taskboard.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
			MongoURI:       "mongodb://localhost:27017",
			MongoDatabase:  "taskboard",
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:5000/api/tasks",
			Timeout: 10 * time.Second,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       255,
			DescriptionMaxLength: 2000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the per-operation store timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// AllowedOrigin returns the CORS origin, "*" when unset
func (c *Config) AllowedOrigin() string {
	if c.Server.FrontendOrigin == "" {
		return "*"
	}
	return c.Server.FrontendOrigin
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values keep their current setting.
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if host := os.Getenv("TASKBOARD_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = ParseIntWithFallback(port, c.Server.Port)
	}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		c.Server.FrontendOrigin = origin
	}
	if timeout := os.Getenv("TASKBOARD_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}

	// Database configuration
	if driver := os.Getenv("TASKBOARD_DB_DRIVER"); driver != "" {
		c.Database.Driver = strings.ToLower(driver)
	}
	if dir := os.Getenv("TASKBOARD_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TASKBOARD_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TASKBOARD_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("TASKBOARD_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Database.MongoURI = uri
	}
	if name := os.Getenv("TASKBOARD_MONGO_DATABASE"); name != "" {
		c.Database.MongoDatabase = name
	}

	// Client configuration
	if baseURL := os.Getenv("NEXT_PUBLIC_API_BASE_URL"); baseURL != "" {
		c.Client.BaseURL = baseURL
	}
	if timeout := os.Getenv("TASKBOARD_CLIENT_TIMEOUT"); timeout != "" {
		c.Client.Timeout = ParseDurationWithFallback(timeout, c.Client.Timeout)
	}

	// Validation configuration
	if maxLen := os.Getenv("TASKBOARD_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if maxLen := os.Getenv("TASKBOARD_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(maxLen, c.Validation.DescriptionMaxLength)
	}

	// Logging configuration
	if level := os.Getenv("TASKBOARD_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("TASKBOARD_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}
	if os.Getenv("TASKBOARD_DEBUG") != "" {
		c.Logging.Debug = true
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate server configuration
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 1 and 65535"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}
	if c.Server.BodyLimit <= 0 {
		return &ConfigError{Field: "server.body_limit", Message: "body limit must be positive"}
	}

	// Validate database configuration
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return &ConfigError{Field: "database.mongo_uri", Message: "mongo URI cannot be empty"}
		}
		if c.Database.MongoDatabase == "" {
			return &ConfigError{Field: "database.mongo_database", Message: "mongo database name cannot be empty"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: fmt.Sprintf("unknown driver %q (want %s or %s)", c.Database.Driver, DriverSQLite, DriverMongo)}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate client configuration
	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "client.base_url", Message: "base URL must be an absolute http(s) URL"}
	}
	if c.Client.Timeout <= 0 {
		return &ConfigError{Field: "client.timeout", Message: "client timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}

	// Validate logging configuration
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "level must be one of debug, info, warn, error"}
	}
	switch c.Logging.Format {
	case "text", "json", "logfmt":
	default:
		return &ConfigError{Field: "logging.format", Message: "format must be one of text, json, logfmt"}
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
