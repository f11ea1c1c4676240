package storage

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/infra/config"
)

const defaultRedisKeyPrefix = "shehelp"

// RedisStore persists each state key as a single Redis string holding the
// JSON payload. Writes replace the whole value; two concurrent writers to the
// same key race with last-write-wins, mirroring the source storage model.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisStore initializes the connection pool and verifies connectivity.
func NewRedisStore(cfg config.RedisSettings, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		PoolTimeout:     4 * time.Second,
		ConnMaxIdleTime: 5 * time.Minute,
	}

	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = defaultRedisKeyPrefix
	}

	logger.Info("Redis store connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("db", cfg.DB),
		zap.String("key_prefix", prefix),
	)

	return &RedisStore{client: client, prefix: prefix, logger: logger}, nil
}

// NewRedisStoreWithClient wraps an existing client, used in tests.
func NewRedisStoreWithClient(client *redis.Client, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultRedisKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

// ReadCollection fetches and decodes the JSON array under key. A missing key
// or malformed payload yields an empty collection with a logged diagnostic.
func (s *RedisStore) ReadCollection(ctx context.Context, key string, out any) error {
	raw, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("discarding malformed stored collection",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return nil
}

// WriteCollection serializes value and replaces the payload under key.
func (s *RedisStore) WriteCollection(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}

	if err := s.client.Set(ctx, s.key(key), encoded, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// ReadScalar returns the bare string under key, reporting absence via ok.
func (s *RedisStore) ReadScalar(ctx context.Context, key string) (string, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return raw, true, nil
}

// WriteScalar stores a bare string under key.
func (s *RedisStore) WriteScalar(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// DeleteScalar removes the value under key.
func (s *RedisStore) DeleteScalar(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// HealthCheck pings the backend for readiness probes.
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}
