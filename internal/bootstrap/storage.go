package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/mbellotti/go-visit-counter/internal/config"
	"github.com/mbellotti/go-visit-counter/internal/storage"
	"github.com/mbellotti/go-visit-counter/internal/storage/memory"
	"github.com/mbellotti/go-visit-counter/internal/storage/postgres"
	redisstore "github.com/mbellotti/go-visit-counter/internal/storage/redis"
	cbImpl "github.com/mbellotti/go-visit-counter/pkg/circuitbreaker/implementation"
	"github.com/mbellotti/go-visit-counter/pkg/retry"
	retryImpl "github.com/mbellotti/go-visit-counter/pkg/retry/implementation"
	"github.com/mbellotti/go-visit-counter/pkg/telemetry"
)

// InitializeStorage opens the configured backend, waits for it to become
// reachable, and wraps it with the circuit breaker and retry policy.
func InitializeStorage(ctx context.Context, cfg config.StorageSection, log telemetry.Logger) (storage.Store, error) {
	var st storage.Store
	switch cfg.Backend {
	case config.BackendMemory, "":
		st = memory.New()
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		st = redisstore.New(client)
	case config.BackendPostgres:
		pg, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		st = pg
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownBackend, cfg.Backend)
	}

	connectRetry := retryImpl.NewRetry(5,
		retry.WithInterval(200*time.Millisecond),
		retry.WithJitter(50*time.Millisecond),
		retry.WithMaxDuration(30*time.Second),
	)
	if err := connectRetry.Execute(ctx, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return st.Ping(pingCtx)
	}); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("storage %s unreachable: %w", cfg.Backend, err)
	}

	breaker := cbImpl.NewCircuitBreaker[any](gobreaker.Settings{
		Name: cfg.Backend,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("storage circuit state changed",
				telemetry.String("backend", name),
				telemetry.String("from", from.String()),
				telemetry.String("to", to.String()),
			)
		},
	})

	opRetry := retryImpl.NewRetry(2,
		retry.WithInterval(50*time.Millisecond),
		retry.WithRetryable(TransientStoreError),
	)

	return storage.NewGuarded(st, breaker, opRetry), nil
}

// TransientStoreError reports whether a storage error is worth retrying:
// transient postgres failures and network errors are, an open circuit and
// everything else are not.
func TransientStoreError(err error) bool {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001": // serialization_failure
			return true
		case "40P01": // deadlock_detected
			return true
		case "08006": // connection_failure
			return true
		case "08001": // sqlclient_unable_to_establish_sqlconnection
			return true
		case "08004": // sqlserver_rejected_establishment_of_sqlconnection
			return true
		}
		return false
	}

	var netErr *net.OpError
	return errors.As(err, &netErr)
}
