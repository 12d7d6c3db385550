// Package redis provides a Redis-backed plan cache. A shared Redis
// instance lets a fleet of agents with the same action library reuse each
// other's computed plans.
package redis

import (
	"time"
)

// Config holds the Redis connection settings. The zero value is not usable;
// start from DefaultConfig and override with ConfigOptions.
type Config struct {
	// Address is the server address as host:port.
	Address string

	// Password authenticates the connection when the server requires it.
	Password string

	// DB is the Redis logical database index.
	DB int

	// KeyPrefix namespaces every key this cache writes. Two engines with
	// different action libraries must not share a prefix, or fingerprint
	// collisions across libraries would serve each other stale plans.
	KeyPrefix string

	// MaxRetries caps retries of a failed command before it is reported.
	MaxRetries int

	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration

	// ReadTimeout and WriteTimeout bound individual socket operations.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PoolSize is the connection pool ceiling; MinIdleConns keeps warm
	// connections for latency-sensitive lookups on the planning path.
	PoolSize     int
	MinIdleConns int
}

// DefaultConfig returns settings for a local development server.
func DefaultConfig() Config {
	return Config{
		Address:      "localhost:6379",
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		KeyPrefix:    "goap:",
	}
}

// ConfigOption overrides one connection setting.
type ConfigOption func(*Config)

// WithAddress sets the server address.
func WithAddress(addr string) ConfigOption {
	return func(c *Config) {
		c.Address = addr
	}
}

// WithPassword sets the authentication password.
func WithPassword(password string) ConfigOption {
	return func(c *Config) {
		c.Password = password
	}
}

// WithDB selects the logical database index.
func WithDB(db int) ConfigOption {
	return func(c *Config) {
		c.DB = db
	}
}

// WithKeyPrefix replaces the key namespace.
func WithKeyPrefix(prefix string) ConfigOption {
	return func(c *Config) {
		c.KeyPrefix = prefix
	}
}

// WithPoolSize sets the connection pool ceiling.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithTimeouts sets the dial, read, and write timeouts together.
func WithTimeouts(dial, read, write time.Duration) ConfigOption {
	return func(c *Config) {
		c.DialTimeout = dial
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}
