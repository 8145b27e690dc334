package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/advsearch/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the optional cache is down; searches still work.
	Degraded Status = "degraded"
	// Unhealthy indicates the search index is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	index Pinger
	cache Pinger
}

// New creates a Service. cache can be nil when caching is disabled.
func New(index, cache Pinger) *Service {
	return &Service{index: index, cache: cache}
}

// Check pings the index and, when configured, the cache.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{"index": ping(ctx, "index", s.index)}
	if s.cache != nil {
		checks["cache"] = ping(ctx, "cache", s.cache)
	}

	status := Healthy
	switch {
	case checks["index"] == CheckError:
		status = Unhealthy
	case checks["cache"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func ping(ctx context.Context, name string, p Pinger) CheckResult {
	if err := p.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn("Health check failed", zap.String("component", name), zap.Error(err))
		return CheckError
	}
	return CheckOK
}
