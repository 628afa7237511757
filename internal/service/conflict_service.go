package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/scheduler"
)

const (
	conflictCacheBase     = "conflicts:base"
	conflictCacheExtended = "conflicts:extended"
	// ConflictCachePattern matches every cached conflict report.
	ConflictCachePattern = "conflicts:*"
)

type entryLister interface {
	List(ctx context.Context, classID string) ([]models.TimetableEntry, error)
}

// ConflictService audits the stored timetable.
type ConflictService struct {
	sources Sources
	entries entryLister
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewConflictService constructs a ConflictService. A nil cache disables caching.
func NewConflictService(sources Sources, entries entryLister, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{sources: sources, entries: entries, cache: cache, metrics: metrics, logger: logger}
}

// List returns the audit findings. Extended adds coverage findings after the
// double-booking and availability findings. The boolean reports a cache hit.
func (s *ConflictService) List(ctx context.Context, extended bool) ([]models.Conflict, bool, error) {
	key := conflictCacheBase
	if extended {
		key = conflictCacheExtended
	}

	var cached []models.Conflict
	if s.cache.Get(ctx, key, &cached) {
		if cached == nil {
			cached = []models.Conflict{}
		}
		return cached, true, nil
	}

	entries, err := s.entries.List(ctx, "")
	if err != nil {
		return nil, false, internalError(err, "failed to load timetable")
	}
	teachers, err := s.sources.Teachers.List(ctx)
	if err != nil {
		return nil, false, internalError(err, "failed to load teachers")
	}
	availability, err := s.sources.Availability.List(ctx)
	if err != nil {
		return nil, false, internalError(err, "failed to load availability")
	}

	conflicts := scheduler.DetectConflicts(entries, teachers, scheduler.NewAvailabilityIndex(availability))
	if extended {
		requirements, err := s.sources.Requirements.List(ctx)
		if err != nil {
			return nil, false, internalError(err, "failed to load requirements")
		}
		conflicts = append(conflicts, scheduler.AuditCoverage(entries, teachers, requirements)...)
	}

	s.metrics.SetConflicts(conflicts)
	s.cache.Set(ctx, key, conflicts, 0)
	return conflicts, false, nil
}

// Invalidate drops cached reports after the timetable or its inputs change.
func (s *ConflictService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, ConflictCachePattern)
}
