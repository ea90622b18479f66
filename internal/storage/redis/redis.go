package redis

import (
	"context"
	"errors"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
)

const (
	totalKey = "visits:total"
	pathsKey = "visits:paths"
)

// Store keeps the visit total in a plain key and per-path counts in a hash.
type Store struct {
	client *goredis.Client
}

func New(client *goredis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) RecordVisit(ctx context.Context, path string) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, totalKey)
	pipe.HIncrBy(ctx, pathsKey, path, 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (s *Store) Total(ctx context.Context) (int64, error) {
	n, err := s.client.Get(ctx, totalKey).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) PathCounts(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, pathsKey).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(raw))
	for path, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		out[path] = n
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
