package postgres

import "time"

// ClientOption configures Client.
type ClientOption func(*ClientConfig)

// ClientConfig holds Postgres configuration.
type ClientConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
}

// WithURL sets the connection string.
func WithURL(url string) ClientOption {
	return func(c *ClientConfig) {
		c.URL = url
	}
}

// WithMaxConnections sets max and min pool connections.
func WithMaxConnections(maxConns, minConns int) ClientOption {
	return func(c *ClientConfig) {
		c.MaxConns = maxConns
		c.MinConns = minConns
	}
}

// WithConnMaxLifetime sets max connection lifetime.
func WithConnMaxLifetime(d time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.ConnMaxLifetime = d
	}
}

// WithDialTimeout sets the timeout used for the initial ping.
func WithDialTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.DialTimeout = d
	}
}
