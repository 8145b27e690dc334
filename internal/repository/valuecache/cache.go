package valuecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/advsearch/internal/db"
)

// KeyPrefix namespaces cache keys.
const KeyPrefix = "advsearch:common_values:"

// DefaultTTL is used when New gets a non-positive ttl.
const DefaultTTL = 10 * time.Minute

// store is the consumer interface for the value cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Source returns the most common values of an aggregation field.
type Source interface {
	MostCommonValues(ctx context.Context, aggField string, size int) ([]string, error)
}

// Cached caches most-common-values lookups in a key-value store.
// Cache failures degrade to the inner source and are never returned.
type Cached struct {
	inner   Source
	store   store
	ttl     time.Duration
	observe func(result string)
	logger  *zap.Logger
}

// New creates a caching decorator. observe receives "hit", "miss" or "error" and may be nil.
func New(inner Source, s store, ttl time.Duration, observe func(result string), logger *zap.Logger) *Cached {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cached{inner: inner, store: s, ttl: ttl, observe: observe, logger: logger}
}

// MostCommonValues returns cached values or asks the inner source.
func (c *Cached) MostCommonValues(ctx context.Context, aggField string, size int) ([]string, error) {
	key := cacheKey(aggField, size)

	if values, ok := c.get(ctx, key); ok {
		c.count("hit")
		return values, nil
	}
	c.count("miss")

	values, err := c.inner.MostCommonValues(ctx, aggField, size)
	if err != nil {
		return nil, fmt.Errorf("most common values: %w", err)
	}

	c.put(ctx, key, values)
	return values, nil
}

func cacheKey(aggField string, size int) string {
	return KeyPrefix + aggField + ":" + strconv.Itoa(size)
}

func (c *Cached) get(ctx context.Context, key string) ([]string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.count("error")
			c.logger.Warn("Failed to get cached values", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		c.logger.Warn("Failed to parse cached values", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return values, true
}

func (c *Cached) put(ctx context.Context, key string, values []string) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		c.logger.Warn("Failed to encode values", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.count("error")
		c.logger.Warn("Failed to cache values", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cached) count(result string) {
	if c.observe != nil {
		c.observe(result)
	}
}
