package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/FeritTasdildiren/iyisiniye/internal/db"
)

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// SetWithTTL stores a value with an expiration.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := s.b().Set().Key(key).Value(string(value)).Ex(ttl).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del removes keys. Missing keys are not an error.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	cmd := s.b().Del().Key(keys...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// DeleteByPattern removes all keys matching a glob pattern and returns how
// many were deleted. The scan runs in pages so a large keyspace never blocks
// the server.
func (s *Store) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	var deleted int
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return deleted, &db.Error{Op: db.OpScan, Err: err}
		}
		if len(res.Elements) > 0 {
			if err := s.Del(ctx, res.Elements...); err != nil {
				return deleted, err
			}
			deleted += len(res.Elements)
		}
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}
