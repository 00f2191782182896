package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jbweber/homelab/stagerad/internal/datastore"
	"github.com/jbweber/homelab/stagerad/internal/migrations"
)

// Config holds all configuration for the stagerad service
type Config struct {
	App        AppConfig        `yaml:"app" toml:"app"`
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Database   DatabaseConfig   `yaml:"database" toml:"database"`
	Auth       AuthConfig       `yaml:"auth" toml:"auth"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
	Pagination PaginationConfig `yaml:"pagination" toml:"pagination"`
}

// AppConfig names the application in response headers
type AppConfig struct {
	Name string `yaml:"name" toml:"name" env:"STAGERAD_APP_NAME"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port            string `yaml:"port" toml:"port" env:"STAGERAD_SERVER_PORT"`
	MaxBodySize     string `yaml:"max_body_size" toml:"max_body_size" env:"STAGERAD_SERVER_MAX_BODY_SIZE"`
	ShutdownTimeout string `yaml:"shutdown_timeout" toml:"shutdown_timeout" env:"STAGERAD_SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig selects and locates the store
type DatabaseConfig struct {
	Driver string `yaml:"driver" toml:"driver" env:"STAGERAD_DB_DRIVER"`
	Path   string `yaml:"path" toml:"path" env:"STAGERAD_DB_PATH"`
	DSN    string `yaml:"dsn" toml:"dsn" env:"STAGERAD_DB_DSN"`
}

// AuthConfig configures bearer token validation
type AuthConfig struct {
	Secret   string `yaml:"secret" toml:"secret" env:"STAGERAD_AUTH_SECRET"`
	Issuer   string `yaml:"issuer" toml:"issuer" env:"STAGERAD_AUTH_ISSUER"`
	TokenTTL string `yaml:"token_ttl" toml:"token_ttl" env:"STAGERAD_AUTH_TOKEN_TTL"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" env:"STAGERAD_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" toml:"pretty" env:"STAGERAD_LOG_PRETTY"`
}

// PaginationConfig bounds list page sizes
type PaginationConfig struct {
	DefaultSize int `yaml:"default_size" toml:"default_size" env:"STAGERAD_PAGINATION_DEFAULT_SIZE"`
	MaxSize     int `yaml:"max_size" toml:"max_size" env:"STAGERAD_PAGINATION_MAX_SIZE"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		App: AppConfig{
			Name: "mcsApp",
		},
		Server: ServerConfig{
			Port:            "8080",
			MaxBodySize:     "1MiB",
			ShutdownTimeout: "15s",
		},
		Database: DatabaseConfig{
			Driver: string(datastore.DialectSQLite),
			Path:   "~/stagerad/data/stagerad.db",
		},
		Auth: AuthConfig{
			Issuer:   "stagerad",
			TokenTTL: "24h",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Pagination: PaginationConfig{
			DefaultSize: 20,
			MaxSize:     2000,
		},
	}
}

// Load builds a Config from defaults, the optional file at path and the
// environment, in that order, and validates the result. The file format is
// chosen by extension: .yaml, .yml or .toml.
func Load(path string) (*Config, error) {
	c := NewConfig()

	if path != "" {
		if err := c.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := processStructFields(c); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var errs []error

	if c.App.Name == "" {
		errs = append(errs, errors.New("app name is required"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}
	if _, err := c.MaxBodyBytes(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		errs = append(errs, err)
	}

	dialect, err := datastore.ParseDialect(c.Database.Driver)
	switch {
	case err != nil:
		errs = append(errs, err)
	case dialect == datastore.DialectSQLite && c.Database.Path == "":
		errs = append(errs, errors.New("database path is required for sqlite"))
	case dialect == datastore.DialectPostgres && c.Database.DSN == "":
		errs = append(errs, errors.New("database dsn is required for postgres"))
	}

	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("auth secret is required"))
	}
	if _, err := c.TokenTTL(); err != nil {
		errs = append(errs, err)
	}

	if c.Pagination.DefaultSize <= 0 {
		errs = append(errs, errors.New("pagination default_size must be positive"))
	}
	if c.Pagination.MaxSize < c.Pagination.DefaultSize {
		errs = append(errs, errors.New("pagination max_size must not be smaller than default_size"))
	}

	return errors.Join(errs...)
}

// MaxBodyBytes parses the configured request body limit, e.g. "1MiB" or "512k"
func (c *Config) MaxBodyBytes() (int64, error) {
	size, err := units.RAMInBytes(c.Server.MaxBodySize)
	if err != nil {
		return 0, fmt.Errorf("invalid server max_body_size %q: %w", c.Server.MaxBodySize, err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("server max_body_size must be positive, got %q", c.Server.MaxBodySize)
	}
	return size, nil
}

// TokenTTL parses the lifetime of minted tokens
func (c *Config) TokenTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Auth.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid auth token_ttl %q: %w", c.Auth.TokenTTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("auth token_ttl must be positive, got %q", c.Auth.TokenTTL)
	}
	return ttl, nil
}

// ShutdownTimeout parses how long the server waits for in-flight requests
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server shutdown_timeout %q: %w", c.Server.ShutdownTimeout, err)
	}
	return d, nil
}

// InitializeDatabase opens the configured store and applies pending migrations
func (c *Config) InitializeDatabase(ctx context.Context) (*datastore.Datastore, error) {
	ds, err := c.OpenDatabase(ctx)
	if err != nil {
		return nil, err
	}

	if err := migrations.Apply(ctx, ds); err != nil {
		ds.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return ds, nil
}

// OpenDatabase opens and tunes the configured store without touching the schema
func (c *Config) OpenDatabase(ctx context.Context) (*datastore.Datastore, error) {
	dialect, err := datastore.ParseDialect(c.Database.Driver)
	if err != nil {
		return nil, err
	}

	dsn := c.Database.DSN
	if dialect == datastore.DialectSQLite {
		dsn = c.expandPath(c.Database.Path)

		// Ensure database directory exists
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	ds, err := datastore.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}

	OptimizeDatabaseConnection(ds.DB)

	if dialect == datastore.DialectSQLite {
		if err := ApplyPragmaOptimizations(ctx, ds.DB); err != nil {
			ds.Close()
			return nil, fmt.Errorf("failed to apply performance optimizations: %w", err)
		}
	}

	return ds, nil
}

// expandPath expands ~ to home directory
func (c *Config) expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Return original path if we can't get home dir
		return path
	}

	return filepath.Join(homeDir, path[2:])
}
