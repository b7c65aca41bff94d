package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aryanarora07/studybuddy-new/internal/config"
)

// RedisStore implements Store on Redis with TTL keys.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg config.PresenceConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "studybuddy:presence"
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 90 * time.Second
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + ":" + userID
}

// Heartbeat marks the user online and refreshes the expiry.
func (s *RedisStore) Heartbeat(ctx context.Context, userID string) error {
	return s.client.Set(ctx, s.key(userID), "1", s.ttl).Err()
}

// SetOffline removes the user's presence entry immediately.
func (s *RedisStore) SetOffline(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

// IsOnline reports whether the user has an unexpired presence entry.
func (s *RedisStore) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// OnlineStatus resolves presence for a batch of users with one MGET.
func (s *RedisStore) OnlineStatus(ctx context.Context, userIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = s.key(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		result[userIDs[i]] = v != nil
	}
	return result, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
