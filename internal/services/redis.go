package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/yourlovestory/story-gateway/pkg/archive"
)

// RedisStore implements ArchiveStore on Redis. Each user's archive lives in
// a single JSON value.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ ArchiveStore = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed archive store.
func NewRedisStore(redisURL string, logger *slog.Logger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStore{
		client: rdb,
		logger: logger,
	}
}

func archiveKey(userID string) string {
	return "user:" + userID + ":archive"
}

func (r *RedisStore) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	r.logger.Debug("redis ping successful", "result", cmd.Val())
	return nil
}

func (r *RedisStore) LoadArchive(ctx context.Context, userID string) ([]archive.Record, error) {
	key := archiveKey(userID)
	cmd := r.client.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("no stored archive", "key", key)
			return nil, nil
		}
		r.logger.Error("redis GET failed", "key", key, "error", err)
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var records []archive.Record
	if err := json.Unmarshal([]byte(cmd.Val()), &records); err != nil {
		r.logger.Error("stored archive is corrupt", "key", key, "error", err)
		return nil, fmt.Errorf("failed to decode stored archive: %w", err)
	}

	return records, nil
}

func (r *RedisStore) SaveArchive(ctx context.Context, userID string, records []archive.Record) error {
	key := archiveKey(userID)
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		r.logger.Error("redis SET failed", "key", key, "error", err)
		return fmt.Errorf("redis set failed: %w", err)
	}

	r.logger.Debug("archive saved", "key", key, "records", len(records))
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
