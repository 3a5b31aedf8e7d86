package infrastructure

import (
	"context"

	"weatherproxy.app/internal/ports"
)

// SystemHealthChecker runs every configured component check. Results are
// keyed by the component name each checker reports.
type SystemHealthChecker struct {
	checkers []ports.HealthChecker
}

// SystemHealthCheckerConfig names the component checkers; nil entries are skipped
type SystemHealthCheckerConfig struct {
	ProviderChecker ports.HealthChecker
	CacheChecker    ports.HealthChecker
}

func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make([]ports.HealthChecker, 0, 2)
	for _, checker := range []ports.HealthChecker{config.ProviderChecker, config.CacheChecker} {
		if checker != nil {
			checkers = append(checkers, checker)
		}
	}
	return &SystemHealthChecker{checkers: checkers}
}

func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers))
	for _, checker := range s.checkers {
		status := checker.Check(ctx)
		results[status.Component] = status
	}
	return results
}
