package inmemorycache

import (
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/rs/zerolog/log"

	"github.com/Hayagreevan-K/recommendation-sys/pkg/metric"
)

const (
	metricUpdateInterval = 1 * time.Minute
	infiniteExpiry       = 0

	HitRate       = "in_memory_cache_hit_rate"
	ItemCount     = "in_memory_cache_item_count"
	EvacuateCount = "in_memory_cache_evacuate_count"
	ExpiryCount   = "in_memory_cache_expiry_count"
)

// InMemoryCache is a byte-keyed cache with optional per-entry expiry
type InMemoryCache interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	SetEx(key, value []byte, expiryInSec int) error
	Delete(key []byte) bool
}

type V1 struct {
	cacheName  string
	sizeInMb   int
	inMemCache *freecache.Cache
}

type V1Builder struct {
	v1 *V1
}

// newV1Builder creates a new builder with required cache name
func newV1Builder(cacheName string) *V1Builder {
	if cacheName == "" {
		log.Panic().Msg("cache name cannot be empty")
	}
	return &V1Builder{
		v1: &V1{
			cacheName: cacheName,
		},
	}
}

// withSizeInMB sets the cache size in megabytes
func (b *V1Builder) withSizeInMB(sizeMB int) *V1Builder {
	if sizeMB <= 0 {
		log.Panic().Msgf("cache size must be positive, got %d MB", sizeMB)
	}
	b.v1.sizeInMb = sizeMB
	return b
}

// SizeInMb returns the cache size in megabytes
func (v *V1) SizeInMb() int {
	return v.sizeInMb
}

// build creates the final cache
func (b *V1Builder) build() (*V1, error) {
	if b.v1.cacheName == "" {
		return nil, fmt.Errorf("cache name is required")
	}
	if b.v1.sizeInMb <= 0 {
		return nil, fmt.Errorf("invalid cache size: %d MB", b.v1.sizeInMb)
	}
	b.v1.inMemCache = freecache.NewCache(b.v1.sizeInMb * 1024 * 1024)
	return b.v1, nil
}

// NewV1InMemoryCache builds a named cache of the given size and starts its metric publisher
func NewV1InMemoryCache(cacheName string, sizeInMb int) InMemoryCache {
	v1InCacheBuilder := newV1Builder(cacheName)
	v1InMemoryCache, err := v1InCacheBuilder.withSizeInMB(sizeInMb).build()
	if err != nil {
		log.Panic().Err(err).Msgf("error building v1 in memory cache with conf")
	}
	go v1InMemoryCache.publishMetric()
	return v1InMemoryCache
}

func (imc *V1) Get(key []byte) ([]byte, error) {
	return imc.inMemCache.Get(key)
}

func (imc *V1) Set(key, value []byte) error {
	return imc.inMemCache.Set(key, value, infiniteExpiry)
}

func (imc *V1) SetEx(key, value []byte, expiryInSec int) error {
	return imc.inMemCache.Set(key, value, expiryInSec)
}

func (imc *V1) Delete(key []byte) bool {
	return imc.inMemCache.Del(key)
}

// publishMetric publishes the in-memory-cache metrics every 1 min, configured by metricUpdateInterval
func (imc *V1) publishMetric() {
	ticker := time.NewTicker(metricUpdateInterval)
	cacheMetricTags := metric.BuildTag(metric.NewTag("cache_name", imc.cacheName))
	defer ticker.Stop()
	for range ticker.C {
		metric.Gauge(HitRate, imc.inMemCache.HitRate(), cacheMetricTags)
		metric.Gauge(ItemCount, float64(imc.inMemCache.EntryCount()), cacheMetricTags)
		metric.Gauge(EvacuateCount, float64(imc.inMemCache.EvacuateCount()), cacheMetricTags)
		metric.Gauge(ExpiryCount, float64(imc.inMemCache.ExpiredCount()), cacheMetricTags)
	}
}
