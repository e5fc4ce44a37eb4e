package cache

import (
	"fmt"
	"io"
	"time"

	appaccount "github.com/mattilda/backend/internal/application/account"
	"github.com/mattilda/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ClosableStatementStore is a statement store holding resources to release on shutdown
type ClosableStatementStore interface {
	appaccount.StatementStore
	io.Closer
}

// StatementStoreFactory picks the statement store backend from configuration
type StatementStoreFactory struct {
	redisConfig           config.RedisConfig
	cleanupInterval       time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StatementStoreFactoryOption is a functional option for configuring the factory
type StatementStoreFactoryOption func(*StatementStoreFactory)

// WithLogger sets the logger for the factory and the stores it creates
func WithLogger(logger *zap.Logger) StatementStoreFactoryOption {
	return func(f *StatementStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store when Redis
// is disabled or unreachable. Default is true.
func WithInMemoryFallback(allow bool) StatementStoreFactoryOption {
	return func(f *StatementStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// WithCleanupInterval sets how often the in-memory store evicts expired entries
func WithCleanupInterval(d time.Duration) StatementStoreFactoryOption {
	return func(f *StatementStoreFactory) {
		f.cleanupInterval = d
	}
}

// NewStatementStoreFactory creates a new factory
func NewStatementStoreFactory(cfg config.RedisConfig, opts ...StatementStoreFactoryOption) *StatementStoreFactory {
	f := &StatementStoreFactory{
		redisConfig:           cfg,
		cleanupInterval:       defaultCleanupInterval,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-backed store
func (f *StatementStoreFactory) CreateRedisStore() (*RedisStatementStore, error) {
	store, err := NewRedisStatementStore(RedisConfig{
		Host:         f.redisConfig.Host,
		Port:         f.redisConfig.Port,
		Password:     f.redisConfig.Password,
		DB:           f.redisConfig.DB,
		DialTimeout:  f.redisConfig.DialTimeout,
		ReadTimeout:  f.redisConfig.ReadTimeout,
		WriteTimeout: f.redisConfig.WriteTimeout,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis statement store: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore creates a process-local store
func (f *StatementStoreFactory) CreateInMemoryStore() *InMemoryStatementStore {
	return NewInMemoryStatementStore(f.cleanupInterval)
}

// CreateStore returns Redis when enabled and reachable. Otherwise it falls back to
// the in-memory store if allowed.
func (f *StatementStoreFactory) CreateStore() (ClosableStatementStore, error) {
	if !f.redisConfig.Enabled {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("statement cache requires Redis but redis.enabled is false")
		}
		f.logger.Info("Redis disabled, using in-memory statement store")
		return f.CreateInMemoryStore(), nil
	}

	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("Using Redis statement store",
			zap.String("host", f.redisConfig.Host),
			zap.Int("port", f.redisConfig.Port),
		)
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for statement cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory statement store. "+
		"Instances will not share cached statements.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
