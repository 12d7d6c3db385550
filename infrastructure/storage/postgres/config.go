// Package postgres provides a PostgreSQL-backed plan archive for
// deployments where many agents share one durable planning history.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds PostgreSQL connection configuration.
type Config struct {
	// Host is the server hostname.
	Host string

	// Port is the server port.
	Port int

	// Database is the database name.
	Database string

	// User is the authentication user.
	User string

	// Password is the authentication password.
	Password string

	// SSLMode is the TLS mode (disable, require, verify-ca, verify-full).
	SSLMode string

	// MaxConns is the maximum pool size.
	MaxConns int32

	// MinConns is the minimum pool size.
	MinConns int32

	// MaxConnLifetime is the maximum connection lifetime.
	MaxConnLifetime time.Duration

	// MaxConnIdleTime is the maximum idle time for connections.
	MaxConnIdleTime time.Duration

	// ConnectTimeout is the timeout for establishing connections.
	ConnectTimeout time.Duration

	// Schema is the schema holding the archive tables.
	Schema string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            5432,
		Database:        "goap",
		User:            "postgres",
		SSLMode:         "disable",
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  10 * time.Second,
		Schema:          "public",
	}
}

// ConnectionString renders the config as a keyword/value DSN.
func (c Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode)
}

// ConfigOption configures the PostgreSQL connection.
type ConfigOption func(*Config)

// WithHost sets the server hostname.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithPort sets the server port.
func WithPort(port int) ConfigOption {
	return func(c *Config) {
		c.Port = port
	}
}

// WithDatabase sets the database name.
func WithDatabase(name string) ConfigOption {
	return func(c *Config) {
		c.Database = name
	}
}

// WithCredentials sets the user and password.
func WithCredentials(user, password string) ConfigOption {
	return func(c *Config) {
		c.User = user
		c.Password = password
	}
}

// WithSSLMode sets the TLS mode.
func WithSSLMode(mode string) ConfigOption {
	return func(c *Config) {
		c.SSLMode = mode
	}
}

// WithPoolSize sets the minimum and maximum pool sizes.
func WithPoolSize(min, max int32) ConfigOption {
	return func(c *Config) {
		c.MinConns = min
		c.MaxConns = max
	}
}

// WithSchema sets the schema holding the archive tables.
func WithSchema(schema string) ConfigOption {
	return func(c *Config) {
		c.Schema = schema
	}
}

// Errors
var (
	ErrConnectionFailed = errors.New("postgres: connection failed")
	ErrOperationTimeout = errors.New("postgres: operation timeout")
)

// NewPool creates a connection pool from the configuration and verifies
// the connection.
func NewPool(ctx context.Context, cfg Config, opts ...ConfigOption) (*pgxpool.Pool, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	return pool, nil
}

// NewPoolFromDSN creates a connection pool from a libpq-style connection
// string or URL and verifies the connection. Pool sizing comes from the
// DSN itself or the pgx defaults.
func NewPoolFromDSN(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	return pool, nil
}
