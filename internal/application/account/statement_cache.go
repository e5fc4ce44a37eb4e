package account

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/account"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultStatementTTL bounds how stale a cached statement can be
const DefaultStatementTTL = 60 * time.Second

// Statement scopes, used as key prefixes and metric labels
const (
	ScopeSchool  = "school"
	ScopeStudent = "student"
)

// StatementStore is a byte-oriented key-value store with TTL and prefix deletion.
// Get returns found=false with a nil error on a plain miss.
type StatementStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// StatementCache caches serialized statements. Store failures never reach callers:
// a failed read is a miss and a failed write or delete is logged.
type StatementCache struct {
	store   StatementStore
	ttl     time.Duration
	logger  *zap.Logger
	metrics *telemetry.BillingMetrics
}

// StatementCacheOption configures a StatementCache
type StatementCacheOption func(*StatementCache)

// WithTTL overrides DefaultStatementTTL
func WithTTL(ttl time.Duration) StatementCacheOption {
	return func(c *StatementCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheMetrics records hits, misses and invalidations
func WithCacheMetrics(m *telemetry.BillingMetrics) StatementCacheOption {
	return func(c *StatementCache) {
		c.metrics = m
	}
}

// NewStatementCache creates a StatementCache over store. A nil store disables caching.
func NewStatementCache(store StatementStore, logger *zap.Logger, opts ...StatementCacheOption) *StatementCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &StatementCache{
		store:  store,
		ttl:    DefaultStatementTTL,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the entry lifetime
func (c *StatementCache) TTL() time.Duration {
	return c.ttl
}

// NamespacePrefix returns the prefix shared by every cached page of one entity
func NamespacePrefix(scope string, id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:statement:", scope, id)
}

// StatementKey returns the cache key of one statement page
func StatementKey(scope string, id uuid.UUID, page shared.PageRequest) string {
	return fmt.Sprintf("%sskip:%d:limit:%d", NamespacePrefix(scope, id), page.Skip, page.Limit)
}

// GetSchool returns a cached school statement page
func (c *StatementCache) GetSchool(ctx context.Context, schoolID uuid.UUID, page shared.PageRequest) (*account.SchoolStatement, bool) {
	var st account.SchoolStatement
	if !c.get(ctx, ScopeSchool, StatementKey(ScopeSchool, schoolID, page), &st) {
		return nil, false
	}
	return &st, true
}

// SetSchool caches a school statement page
func (c *StatementCache) SetSchool(ctx context.Context, st *account.SchoolStatement, page shared.PageRequest) {
	c.set(ctx, StatementKey(ScopeSchool, st.SchoolID, page), st)
}

// GetStudent returns a cached student statement page
func (c *StatementCache) GetStudent(ctx context.Context, studentID uuid.UUID, page shared.PageRequest) (*account.StudentStatement, bool) {
	var st account.StudentStatement
	if !c.get(ctx, ScopeStudent, StatementKey(ScopeStudent, studentID, page), &st) {
		return nil, false
	}
	return &st, true
}

// SetStudent caches a student statement page
func (c *StatementCache) SetStudent(ctx context.Context, st *account.StudentStatement, page shared.PageRequest) {
	c.set(ctx, StatementKey(ScopeStudent, st.StudentID, page), st)
}

// InvalidateSchool drops every cached page of a school
func (c *StatementCache) InvalidateSchool(ctx context.Context, schoolID uuid.UUID) {
	c.invalidate(ctx, ScopeSchool, schoolID)
}

// InvalidateStudent drops every cached page of a student
func (c *StatementCache) InvalidateStudent(ctx context.Context, studentID uuid.UUID) {
	c.invalidate(ctx, ScopeStudent, studentID)
}

func (c *StatementCache) get(ctx context.Context, scope, key string, dst any) bool {
	if c.store == nil {
		return false
	}
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Statement cache read failed, treating as miss",
			zap.String("key", key),
			zap.Error(err),
		)
		c.record(ctx, scope, false)
		return false
	}
	if !found {
		c.record(ctx, scope, false)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Statement cache entry is corrupt, treating as miss",
			zap.String("key", key),
			zap.Error(err),
		)
		c.record(ctx, scope, false)
		return false
	}
	c.record(ctx, scope, true)
	return true
}

func (c *StatementCache) set(ctx context.Context, key string, value any) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Failed to encode statement for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Statement cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *StatementCache) invalidate(ctx context.Context, scope string, id uuid.UUID) {
	if c.store == nil || id == uuid.Nil {
		return
	}
	prefix := NamespacePrefix(scope, id)
	if err := c.store.DeleteByPrefix(ctx, prefix); err != nil {
		c.logger.Warn("Statement cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	if c.metrics != nil {
		c.metrics.RecordInvalidation(ctx, scope)
	}
}

func (c *StatementCache) record(ctx context.Context, scope string, hit bool) {
	if c.metrics != nil {
		c.metrics.RecordStatementCache(ctx, scope, hit)
	}
}
