package advsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	elasticAddrs []string
	username     string
	password     string
	apiKey       string
	index        string

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	fields      []Field
	fieldGroups map[string][]string
	seed        string

	readinessTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithElastic sets the Elasticsearch node URLs.
func WithElastic(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.elasticAddrs = addrs
	})
}

// WithBasicAuth authenticates to Elasticsearch with a username and password.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithAPIKey authenticates to Elasticsearch with an API key.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithIndex sets the index holding the documents. Default: "adventures".
func WithIndex(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.index = name
	})
}

// WithRedisCache caches autocomplete value lists in Redis or Valkey for ttl.
// A non-positive ttl uses ten minutes.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithFields sets the field catalog. Required.
func WithFields(fields ...Field) Option {
	return optionFunc(func(c *clientConfig) {
		c.fields = append(c.fields, fields...)
	})
}

// WithFieldGroups replaces the built-in field groups of SimilarDocuments.
func WithFieldGroups(groups map[string][]string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fieldGroups = groups
	})
}

// WithFixedSeed pins random ordering instead of rotating it weekly.
func WithFixedSeed(seed string) Option {
	return optionFunc(func(c *clientConfig) {
		c.seed = seed
	})
}

// WithReadinessTimeout bounds how long New waits for the backends. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger logs failed calls at warn and completed calls at debug level.
// A nil logger disables logging, which is the default.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus exports call counts, latencies and cache results
// on reg. A nil registerer disables metrics.
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
