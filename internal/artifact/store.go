// Package artifact loads and validates the model artifacts this service
// serves from: the product metadata table, the precomputed similarity map,
// the ANN index, and the embedding-dimension hint. Every load failure is
// converted into a per-artifact status at this boundary; only a missing or
// unparsable catalog table is fatal.
package artifact

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/Hayagreevan-K/recommendation-sys/internal/ann"
	"github.com/Hayagreevan-K/recommendation-sys/internal/catalog"
	"github.com/Hayagreevan-K/recommendation-sys/internal/config"
	"github.com/Hayagreevan-K/recommendation-sys/pkg/metric"
)

// Bundle is the validated, internally consistent set of loaded artifacts,
// owned by whoever called LoadBundle. SimilarityMap and Index are nil when
// their artifacts are absent or malformed.
type Bundle struct {
	Products      []catalog.Product
	SimilarityMap map[string][]string
	Index         ann.Index
	Dimension     int

	CatalogResult    Result
	SimilarityResult Result
	DimensionResult  Result
	IndexResult      Result
}

// LoadBundle loads all artifacts from the configured model directory. The
// optional artifacts degrade independently; an error is returned only when
// the catalog table cannot be loaded from either serialized form, because
// the service cannot answer anything without it.
func LoadBundle(cfg *config.AppConfig) (*Bundle, error) {
	bundle := &Bundle{}

	catalogPath := filepath.Join(cfg.ModelDir, cfg.CatalogFile)
	fallbackPath := filepath.Join(cfg.ModelDir, cfg.CatalogFallback)
	bundle.Products, bundle.CatalogResult = loadCatalogTable(catalogPath, fallbackPath)
	reportArtifact("catalog_table", bundle.CatalogResult)
	if bundle.CatalogResult.Status != StatusLoaded {
		if bundle.CatalogResult.Err != nil {
			return nil, fmt.Errorf("catalog table unusable: %w", bundle.CatalogResult.Err)
		}
		return nil, fmt.Errorf("catalog table not found at %s (fallback %s)", catalogPath, fallbackPath)
	}

	similarityPath := filepath.Join(cfg.ModelDir, cfg.SimilarityMapFile)
	bundle.SimilarityMap, bundle.SimilarityResult = loadSimilarityMap(similarityPath)
	reportArtifact("similarity_map", bundle.SimilarityResult)

	dimensionPath := filepath.Join(cfg.ModelDir, cfg.DimensionHintFile)
	bundle.Dimension, bundle.DimensionResult = resolveEmbeddingDimension(dimensionPath, cfg.EmbeddingDimension)
	reportArtifact("dimension_hint", bundle.DimensionResult)

	indexPath := filepath.Join(cfg.ModelDir, cfg.AnnIndexFile)
	bundle.Index, bundle.IndexResult = loadANNArtifact(indexPath, bundle.Dimension)
	reportArtifact("ann_index", bundle.IndexResult)

	return bundle, nil
}

func reportArtifact(name string, result Result) {
	tags := metric.BuildTag(metric.NewTag(metric.TagArtifact, name))
	metric.Incr("artifact_load_"+result.Status.String(), tags)
	switch result.Status {
	case StatusLoaded:
		log.Info().Msgf("Artifact %s loaded", name)
	case StatusAbsent:
		log.Warn().Msgf("Artifact %s absent", name)
	case StatusMalformed:
		log.Error().Err(result.Err).Msgf("Artifact %s is malformed, treating as absent", name)
	}
}
