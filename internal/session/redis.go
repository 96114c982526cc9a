package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"realmbot/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of Redis. Sessions are stored as
// JSON under one key per user with a TTL, so abandoned flows expire on
// their own and in-progress flows survive a bot restart.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

// Get returns the user's session, or an idle session if none is stored
func (s *RedisStore) Get(ctx context.Context, userID int64) (domain.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.IdleSession(), nil
	}
	if err != nil {
		return domain.IdleSession(), fmt.Errorf("failed to read session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return domain.IdleSession(), fmt.Errorf("failed to decode session: %w", err)
	}

	return sess, nil
}

// Set overwrites the user's session atomically
func (s *RedisStore) Set(ctx context.Context, userID int64, sess domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(userID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

// Clear removes the user's session
func (s *RedisStore) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
