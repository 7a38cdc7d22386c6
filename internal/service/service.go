// Package service is the composition root: it answers find-product and
// recommend-for-product requests by composing the catalog and the resolver,
// with an in-memory cache in front of rendered recommendation lists.
package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/Hayagreevan-K/recommendation-sys/internal/catalog"
	"github.com/Hayagreevan-K/recommendation-sys/internal/resolver"
	"github.com/Hayagreevan-K/recommendation-sys/pkg/inmemorycache"
	"github.com/Hayagreevan-K/recommendation-sys/pkg/metric"
)

type Service struct {
	catalog            *catalog.Catalog
	resolver           *resolver.Resolver
	recCache           inmemorycache.InMemoryCache
	recCacheTTLSeconds int
	defaultSearchLimit int
}

// New builds the service. recCache may be nil to disable response caching.
func New(cat *catalog.Catalog, res *resolver.Resolver, recCache inmemorycache.InMemoryCache, recCacheTTLSeconds, defaultSearchLimit int) *Service {
	return &Service{
		catalog:            cat,
		resolver:           res,
		recCache:           recCache,
		recCacheTTLSeconds: recCacheTTLSeconds,
		defaultSearchLimit: defaultSearchLimit,
	}
}

// FindCandidates searches the catalog by title. An empty query returns the
// head-of-catalog default view. limit 0 means the configured default.
func (s *Service) FindCandidates(query string, limit int) ([]catalog.Product, error) {
	if limit < 0 {
		return nil, fmt.Errorf("invalid search limit %d", limit)
	}
	if limit == 0 {
		limit = s.defaultSearchLimit
	}
	return s.catalog.Search(query, limit), nil
}

// Recommend resolves up to k similar products and renders each neighbor id
// back to a display record. Neighbor ids no longer present in the catalog
// (stale similarity-map or index references) are echoed as id-only records
// rather than dropped, so callers can still render them.
func (s *Service) Recommend(id string, k int) ([]catalog.Product, error) {
	if k <= 0 {
		return nil, fmt.Errorf("invalid neighbor count %d", k)
	}

	cacheKey := []byte("rec:" + id + ":" + strconv.Itoa(k))
	if s.recCache != nil {
		if cached, err := s.recCache.Get(cacheKey); err == nil {
			var products []catalog.Product
			if err := json.Unmarshal(cached, &products); err == nil {
				metric.Incr(metric.RecCacheHitCount, nil)
				return products, nil
			}
		}
		metric.Incr(metric.RecCacheMissCount, nil)
	}

	neighborIDs, err := s.resolver.GetSimilar(id, k)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(neighborIDs))
	for _, neighborID := range neighborIDs {
		if product, ok := s.catalog.Lookup(neighborID); ok {
			products = append(products, product)
			continue
		}
		products = append(products, catalog.Product{
			ID:    neighborID,
			Title: s.catalog.GetTitle(neighborID),
		})
	}

	if s.recCache != nil {
		if encoded, err := json.Marshal(products); err == nil {
			if err := s.recCache.SetEx(cacheKey, encoded, s.recCacheTTLSeconds); err != nil {
				log.Warn().Err(err).Msgf("Failed to cache recommendations for %s", id)
			}
		}
	}
	return products, nil
}

// GetTitle exposes the catalog's total title lookup to the presentation layer
func (s *Service) GetTitle(id string) string {
	return s.catalog.GetTitle(id)
}

// Lookup exposes the catalog record lookup to the presentation layer
func (s *Service) Lookup(id string) (catalog.Product, bool) {
	return s.catalog.Lookup(id)
}
