// Package resolver produces neighbor ids for a product, preferring the exact
// precomputed similarity map and falling back to the ANN index.
package resolver

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Hayagreevan-K/recommendation-sys/internal/ann"
	"github.com/Hayagreevan-K/recommendation-sys/internal/catalog"
	"github.com/Hayagreevan-K/recommendation-sys/pkg/metric"
)

type Resolver struct {
	catalog       *catalog.Catalog
	similarityMap map[string][]string
	index         ann.Index
}

// New builds a resolver over the loaded artifacts. Both similarityMap and
// index may be nil; each missing source only narrows what GetSimilar can
// answer, it never makes construction fail.
func New(cat *catalog.Catalog, similarityMap map[string][]string, index ann.Index) *Resolver {
	return &Resolver{
		catalog:       cat,
		similarityMap: similarityMap,
		index:         index,
	}
}

// GetSimilar returns up to k neighbor ids for the product, never including
// the product itself. The similarity map path trusts the map's build-time
// order and self-exclusion; the ANN path queries k+1 ordinals (the item
// usually appears in its own neighbor list), excludes self, then truncates.
// An empty result means no recommendation source covers this id; it is not
// an error. Deterministic for fixed artifacts.
func (r *Resolver) GetSimilar(id string, k int) ([]string, error) {
	if k <= 0 {
		return nil, fmt.Errorf("invalid neighbor count %d", k)
	}

	if r.similarityMap != nil {
		if neighbors, ok := r.similarityMap[id]; ok {
			metric.Incr(metric.SimilarityMapHitCount, nil)
			if k > len(neighbors) {
				k = len(neighbors)
			}
			result := make([]string, k)
			copy(result, neighbors[:k])
			return result, nil
		}
	}

	if r.index == nil {
		metric.Incr(metric.EmptyResolveCount, nil)
		return []string{}, nil
	}

	ordinal, ok := r.catalog.OrdinalOf(id)
	if !ok {
		metric.Incr(metric.EmptyResolveCount, nil)
		return []string{}, nil
	}

	neighbors, err := r.index.NeighborsByItem(ordinal, k+1)
	if err != nil {
		// an unanswerable query degrades to empty, same as a missing source
		log.Error().Err(err).Msgf("ANN query failed for id %s (ordinal %d)", id, ordinal)
		metric.Incr(metric.EmptyResolveCount, nil)
		return []string{}, nil
	}

	metric.Incr(metric.AnnFallbackCount, nil)
	result := make([]string, 0, k)
	for _, neighbor := range neighbors {
		neighborID, ok := r.catalog.IDAt(neighbor.Ordinal)
		if !ok || neighborID == id {
			continue
		}
		result = append(result, neighborID)
		if len(result) == k {
			break
		}
	}
	return result, nil
}
