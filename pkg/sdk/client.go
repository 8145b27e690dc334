package advsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbElastic "github.com/kailas-cloud/advsearch/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/advsearch/internal/db/redis"
	"github.com/kailas-cloud/advsearch/internal/domain/field"
	"github.com/kailas-cloud/advsearch/internal/domain/search/request"
	"github.com/kailas-cloud/advsearch/internal/domain/search/result"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
	searchrepo "github.com/kailas-cloud/advsearch/internal/repository/search"
	"github.com/kailas-cloud/advsearch/internal/repository/valuecache"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/advsearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultIndex            = "adventures"
)

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, req request.Search) (result.Page, error)
	SimilarTitles(ctx context.Context, title string, excludeID int64) ([]result.Summary, error)
	SimilarDocuments(ctx context.Context, id int64, group string) ([]result.Document, []similarity.TermWeight, error)
	Suggest(ctx context.Context, fieldName, prefix string) ([]string, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the advsearch SDK entry point. It is safe for concurrent use.
type Client struct {
	closers []func()
	index   healthuc.Pinger
	search  searchUseCase
	health  healthUseCase
	catalog *field.Catalog
	obs     *observer
}

// New creates a Client and waits until the search index answers.
// The provided context bounds the readiness checks.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		index:            defaultIndex,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.elasticAddrs) == 0 {
		return nil, errors.New("advsearch: elasticsearch address required (use WithElastic)")
	}
	catalog, err := buildCatalog(cfg.fields)
	if err != nil {
		return nil, err
	}
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	index, err := dbElastic.NewStore(dbElastic.Config{
		Addresses: cfg.elasticAddrs,
		Username:  cfg.username,
		Password:  cfg.password,
		APIKey:    cfg.apiKey,
		Index:     cfg.index,
	})
	if err != nil {
		return nil, fmt.Errorf("advsearch: create index client: %w", err)
	}
	if err := index.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		return nil, fmt.Errorf("advsearch: index not ready: %w", err)
	}

	c := &Client{index: index, catalog: catalog, obs: obs}
	repo := searchrepo.New(index)

	var values searchuc.ValueSource = repo
	var cachePinger healthuc.Pinger
	if len(cfg.cacheAddrs) > 0 {
		cache, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.cacheAddrs, Password: cfg.cachePassword})
		if err != nil {
			return nil, fmt.Errorf("advsearch: create cache client: %w", err)
		}
		if err := cache.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
			cache.Close()
			return nil, fmt.Errorf("advsearch: cache not ready: %w", err)
		}
		c.closers = append(c.closers, cache.Close)
		values = valuecache.New(repo, cache, cfg.cacheTTL, obs.cacheResult, zap.NewNop())
		cachePinger = cache
	}

	var seeds searchuc.SeedSource = request.NewWeeklySeed(nil)
	if cfg.seed != "" {
		seeds = request.FixedSeed(cfg.seed)
	}

	c.search = searchuc.New(repo, values, catalog, similarity.Groups(cfg.fieldGroups), seeds)
	c.health = healthuc.New(index, cachePinger)
	return c, nil
}

func buildCatalog(fields []Field) (*field.Catalog, error) {
	if len(fields) == 0 {
		return nil, errors.New("advsearch: field catalog required (use WithFields)")
	}
	descriptors := make([]field.Descriptor, 0, len(fields))
	for _, f := range fields {
		d, err := field.New(f.Name, field.Type(f.Type), field.Options{
			Filterable:         f.Filterable,
			FreetextSearchable: f.FreetextSearchable,
			SearchBoost:        f.SearchBoost,
			AggregationTarget:  f.AggregationTarget,
		})
		if err != nil {
			return nil, fmt.Errorf("advsearch: field %q: %w", f.Name, err)
		}
		descriptors = append(descriptors, d)
	}
	catalog, err := field.NewCatalog(descriptors)
	if err != nil {
		return nil, fmt.Errorf("advsearch: %w", err)
	}
	return catalog, nil
}

// Close releases all resources.
func (c *Client) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
}

// Ping checks search index connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.index.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
