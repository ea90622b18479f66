package retry

import (
	"context"
	"time"
)

type Retry interface {
	Execute(ctx context.Context, fn func() error) error
}

type Config struct {
	RetryableFn func(err error) bool
	Interval    time.Duration
	Jitter      time.Duration
	MaxDuration time.Duration
}

type Option func(*Config)

// WithRetryable restricts retries to errors the classifier approves of;
// everything else fails immediately.
func WithRetryable(fn func(err error) bool) Option {
	return func(c *Config) {
		c.RetryableFn = fn
	}
}

func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		c.Interval = d
	}
}

func WithJitter(d time.Duration) Option {
	return func(c *Config) {
		c.Jitter = d
	}
}

// WithMaxDuration caps the total time spent across all attempts.
func WithMaxDuration(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDuration = d
	}
}

func ApplyOptions(opts ...Option) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
