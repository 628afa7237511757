package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	svc.Set(ctx(), "k", "v", 0)
	var out string
	assert.False(t, svc.Get(ctx(), "k", &out))
	assert.Empty(t, repo.items)
}

func TestCacheServiceRecordsHitsAndMisses(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewCacheService(newMemoryCacheRepo(), metrics, 0, nil, true)

	var out string
	assert.False(t, svc.Get(ctx(), "k", &out))
	svc.Set(ctx(), "k", "v", 0)
	assert.True(t, svc.Get(ctx(), "k", &out))
	assert.Equal(t, "v", out)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheMisses))
	assert.Equal(t, 0.5, testutil.ToFloat64(metrics.cacheHitRatio))
}

func TestNilCacheServiceIsSafe(t *testing.T) {
	var svc *CacheService
	var out string
	assert.False(t, svc.Get(ctx(), "k", &out))
	svc.Set(ctx(), "k", "v", 0)
	svc.Invalidate(ctx(), "*")
}
