package implementation

import (
	"context"
	"time"

	"github.com/mbellotti/go-visit-counter/pkg/retry"
	goretry "github.com/sethvargo/go-retry"
)

type goRetry struct {
	backoff     goretry.Backoff
	retryableFn func(err error) bool
}

func NewRetry(maxRetries uint64, opts ...retry.Option) retry.Retry {
	cfg := retry.ApplyOptions(opts...)

	interval := cfg.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	var backoff goretry.Backoff = goretry.NewExponential(interval)
	if cfg.Jitter > 0 {
		backoff = goretry.WithJitter(cfg.Jitter, backoff)
	}
	if cfg.MaxDuration > 0 {
		backoff = goretry.WithMaxDuration(cfg.MaxDuration, backoff)
	}
	backoff = goretry.WithMaxRetries(maxRetries, backoff)

	return &goRetry{
		backoff:     backoff,
		retryableFn: cfg.RetryableFn,
	}
}

func (r *goRetry) Execute(ctx context.Context, fn func() error) error {
	return goretry.Do(ctx, r.backoff, func(ctx context.Context) error {
		err := fn()
		if err == nil {
			return nil
		}

		if r.retryableFn != nil && !r.retryableFn(err) {
			return err
		}

		return goretry.RetryableError(err)
	})
}
