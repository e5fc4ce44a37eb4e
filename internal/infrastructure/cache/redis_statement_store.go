package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	appaccount "github.com/mattilda/backend/internal/application/account"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultScanBatchSize = 100
	defaultRedisTimeout  = 2 * time.Second
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c RedisConfig) withDefaults() RedisConfig {
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultRedisTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaultRedisTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultRedisTimeout
	}
	return c
}

// RedisStatementStore keeps serialized account statements in Redis
type RedisStatementStore struct {
	client     *redis.Client
	ownsClient bool
	logger     *zap.Logger
}

// NewRedisStatementStore connects to Redis and verifies the connection with PING
func NewRedisStatementStore(cfg RedisConfig, logger *zap.Logger) (*RedisStatementStore, error) {
	cfg = cfg.withDefaults()
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store := NewRedisStatementStoreWithClient(client, logger)
	store.ownsClient = true
	return store, nil
}

// NewRedisStatementStoreWithClient wraps an existing client.
// The caller keeps ownership of the client and is responsible for closing it.
func NewRedisStatementStoreWithClient(client *redis.Client, logger *zap.Logger) *RedisStatementStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStatementStore{
		client: client,
		logger: logger.Named("statement_cache.redis"),
	}
}

// Get returns the stored value and whether it was present
func (s *RedisStatementStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores value under key with the given TTL
func (s *RedisStatementStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// DeleteByPrefix removes every key starting with prefix.
// SCAN is used instead of KEYS so large keyspaces do not block the server.
func (s *RedisStatementStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	var deleted int64
	pattern := prefix + "*"

	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			n, err := s.client.Unlink(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("redis unlink: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	s.logger.Debug("Deleted statement keys", zap.String("prefix", prefix), zap.Int64("deleted", deleted))
	return nil
}

// Ping checks that Redis is reachable
func (s *RedisStatementStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client if the store created it
func (s *RedisStatementStore) Close() error {
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}

// Client returns the underlying Redis client
func (s *RedisStatementStore) Client() *redis.Client {
	return s.client
}

var _ appaccount.StatementStore = (*RedisStatementStore)(nil)
