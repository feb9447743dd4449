package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so in-progress edits survive bot
// restarts. Keys expire after TTL of inactivity.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to Redis at addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("menu:%d", chatID)
}

func (r *RedisStore) Load(ctx context.Context, chatID int64) (*Session, error) {
	data, err := r.rdb.Get(ctx, sessionKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewSession(), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	s := &Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, chatID int64, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.rdb.Set(ctx, sessionKey(chatID), data, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, chatID int64) error {
	return r.rdb.Del(ctx, sessionKey(chatID)).Err()
}

// Ping checks the Redis connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
