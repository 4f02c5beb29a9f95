package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares styling hashes across machines, for CI fleets that
// cannot share a cache directory.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// DefaultRedisConfig returns a default Redis configuration
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:   "localhost:6379",
		Prefix: "styler:",
		TTL:    30 * 24 * time.Hour,
	}
}

// NewRedisStore connects and pings the server
func NewRedisStore(config RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisStoreWithClient(client, config), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, config RedisConfig) *RedisStore {
	return &RedisStore{client: client, prefix: config.Prefix, ttl: config.TTL}
}

// Lookup reports whether the hash has been recorded
func (s *RedisStore) Lookup(hash string) (bool, error) {
	n, err := s.client.Exists(context.Background(), s.prefix+hash).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Record stores the hash with the configured TTL
func (s *RedisStore) Record(hash string) error {
	return s.client.Set(context.Background(), s.prefix+hash, "", s.ttl).Err()
}

// Clear removes all hashes under the prefix
func (s *RedisStore) Clear() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Info reports the entry count under the prefix
func (s *RedisStore) Info() (Info, error) {
	ctx := context.Background()
	n := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return Info{}, err
	}
	return Info{Backend: "redis", Path: s.prefix, Entries: n}, nil
}
