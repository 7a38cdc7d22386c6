package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hayagreevan-K/recommendation-sys/internal/ann"
	"github.com/Hayagreevan-K/recommendation-sys/internal/compression"
	"github.com/Hayagreevan-K/recommendation-sys/internal/config"
)

func testConfig(dir string) *config.AppConfig {
	return &config.AppConfig{
		ModelDir:           dir,
		CatalogFile:        "catalog.csv",
		CatalogFallback:    "catalog.json",
		SimilarityMapFile:  "similarity_map.json",
		AnnIndexFile:       "embeddings.ann",
		DimensionHintFile:  "reducer.json",
		EmbeddingDimension: config.DefaultEmbeddingDimension,
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadCatalogCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.csv", "product_id,title,image_url\nA,Red Shoe,http://img/a\nB,Blue Shoe,http://img/b\n")

	products, result := loadCatalogTable(filepath.Join(dir, "catalog.csv"), filepath.Join(dir, "catalog.json"))
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Len(t, products, 2)
	assert.Equal(t, "A", products[0].ID)
	assert.Equal(t, "Red Shoe", products[0].Title)
	assert.Equal(t, "http://img/a", products[0].Extra["image_url"])
}

func TestLoadCatalogCSVSynthesizesColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.csv", "sku,price\nX100,9.99\nX200,19.99\n")

	products, result := loadCatalogTable(filepath.Join(dir, "catalog.csv"), filepath.Join(dir, "catalog.json"))
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Len(t, products, 2)
	assert.Equal(t, "0", products[0].ID)
	assert.Equal(t, "Product 0", products[0].Title)
	assert.Equal(t, "1", products[1].ID)
	assert.Equal(t, "X100", products[0].Extra["sku"])
}

func TestLoadCatalogFallsBackToJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.json", `[{"product_id":"A","title":"Red Shoe","brand":"acme"},{"product_id":7,"title":"Blue Shoe"}]`)

	products, result := loadCatalogTable(filepath.Join(dir, "catalog.csv"), filepath.Join(dir, "catalog.json"))
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Len(t, products, 2)
	assert.Equal(t, "acme", products[0].Extra["brand"])
	// numeric ids are normalized to strings
	assert.Equal(t, "7", products[1].ID)
}

func TestLoadCatalogJSONSynthesizesMissingFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.json", `[{"title":"Only Title"},{"product_id":"B"}]`)

	products, result := loadCatalogTable(filepath.Join(dir, "catalog.csv"), filepath.Join(dir, "catalog.json"))
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Equal(t, "0", products[0].ID)
	assert.Equal(t, "Only Title", products[0].Title)
	assert.Equal(t, "B", products[1].ID)
	assert.Equal(t, "Product 1", products[1].Title)
}

func TestLoadCatalogBothMissing(t *testing.T) {
	dir := t.TempDir()

	_, result := loadCatalogTable(filepath.Join(dir, "catalog.csv"), filepath.Join(dir, "catalog.json"))
	assert.Equal(t, StatusAbsent, result.Status)
}

func TestLoadCatalogMalformedCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.csv", "")

	_, result := loadCatalogTable(filepath.Join(dir, "catalog.csv"), filepath.Join(dir, "catalog.json"))
	assert.Equal(t, StatusMalformed, result.Status)
	assert.Error(t, result.Err)
}

func TestLoadSimilarityMap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "similarity_map.json", `{"A":["C","B"],"B":["A"]}`)

	simMap, result := loadSimilarityMap(filepath.Join(dir, "similarity_map.json"))
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Equal(t, []string{"C", "B"}, simMap["A"])
}

func TestLoadSimilarityMapAbsentAndMalformed(t *testing.T) {
	dir := t.TempDir()

	_, result := loadSimilarityMap(filepath.Join(dir, "similarity_map.json"))
	assert.Equal(t, StatusAbsent, result.Status)

	writeFile(t, dir, "similarity_map.json", "{broken")
	_, result = loadSimilarityMap(filepath.Join(dir, "similarity_map.json"))
	assert.Equal(t, StatusMalformed, result.Status)
}

func TestResolveEmbeddingDimensionBare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reducer.json", `{"n_components": 64}`)

	dim, result := resolveEmbeddingDimension(filepath.Join(dir, "reducer.json"), 32)
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Equal(t, 64, dim)
}

func TestResolveEmbeddingDimensionWrapped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reducer.json", `{"model": {"n_components": 48}}`)

	dim, result := resolveEmbeddingDimension(filepath.Join(dir, "reducer.json"), 32)
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Equal(t, 48, dim)
}

func TestResolveEmbeddingDimensionFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()

	dim, result := resolveEmbeddingDimension(filepath.Join(dir, "reducer.json"), 32)
	assert.Equal(t, StatusAbsent, result.Status)
	assert.Equal(t, 32, dim)

	writeFile(t, dir, "reducer.json", `{"n_components": 0}`)
	dim, result = resolveEmbeddingDimension(filepath.Join(dir, "reducer.json"), 32)
	assert.Equal(t, StatusMalformed, result.Status)
	assert.Equal(t, 32, dim)
}

func writeIndexArtifact(t *testing.T, path string, vectors [][]float32) {
	t.Helper()
	index, err := ann.NewFlatIndex(len(vectors[0]), ann.EncodingFP32)
	assert.NoError(t, err)
	for i, v := range vectors {
		assert.NoError(t, index.AddItem(i, v))
	}
	assert.NoError(t, index.Save(path))
}

func TestLoadANNArtifactCanonical(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "embeddings.ann")
	writeIndexArtifact(t, path, [][]float32{{1, 0}, {0, 1}})

	index, result := loadANNArtifact(path, 2)
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Equal(t, 2, index.Stats().Count)
}

func TestLoadANNArtifactDecompressIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "embeddings.ann")
	raw := filepath.Join(dir, "raw.ann")
	writeIndexArtifact(t, raw, [][]float32{{1, 0}, {0, 1}, {1, 1}})

	rawBytes, err := os.ReadFile(raw)
	assert.NoError(t, err)
	compressed, err := compression.NewGzipEncoder().Encode(rawBytes)
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(path+".gz", compressed, 0644))

	// first load decompresses to the canonical path
	index, result := loadANNArtifact(path, 2)
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Equal(t, 3, index.Stats().Count)

	firstBytes, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, rawBytes, firstBytes)

	// a second load (another process start sharing the directory) reuses it
	index, result = loadANNArtifact(path, 2)
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Equal(t, 3, index.Stats().Count)

	secondBytes, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, firstBytes, secondBytes)
}

func TestLoadANNArtifactAbsent(t *testing.T) {
	dir := t.TempDir()

	index, result := loadANNArtifact(filepath.Join(dir, "embeddings.ann"), 2)
	assert.Equal(t, StatusAbsent, result.Status)
	assert.Nil(t, index)
}

func TestLoadANNArtifactDimensionMismatchIsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "embeddings.ann")
	writeIndexArtifact(t, path, [][]float32{{1, 0, 0}})

	index, result := loadANNArtifact(path, 2)
	assert.Equal(t, StatusMalformed, result.Status)
	assert.Nil(t, index)
}

func TestLoadBundleDegradesGracefully(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.csv", "product_id,title\nA,Red Shoe\nB,Blue Shoe\n")
	// similarity map malformed, index and hint absent
	writeFile(t, dir, "similarity_map.json", "{broken")

	bundle, err := LoadBundle(testConfig(dir))
	assert.NoError(t, err)
	assert.Len(t, bundle.Products, 2)
	assert.Nil(t, bundle.SimilarityMap)
	assert.Nil(t, bundle.Index)
	assert.Equal(t, config.DefaultEmbeddingDimension, bundle.Dimension)
	assert.Equal(t, StatusMalformed, bundle.SimilarityResult.Status)
	assert.Equal(t, StatusAbsent, bundle.IndexResult.Status)
}

func TestLoadBundleMissingCatalogIsFatal(t *testing.T) {
	dir := t.TempDir()

	bundle, err := LoadBundle(testConfig(dir))
	assert.Error(t, err)
	assert.Nil(t, bundle)
	assert.Contains(t, err.Error(), "catalog table not found")
}

func TestLoadBundleFullSet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.csv", "product_id,title\nA,Red Shoe\nB,Blue Shoe\nC,Red Hat\n")
	writeFile(t, dir, "similarity_map.json", `{"A":["C","B"]}`)
	writeFile(t, dir, "reducer.json", `{"n_components": 2}`)
	writeIndexArtifact(t, filepath.Join(dir, "embeddings.ann"), [][]float32{{1, 0}, {0.9, 0.1}, {0, 1}})

	bundle, err := LoadBundle(testConfig(dir))
	assert.NoError(t, err)
	assert.Equal(t, 2, bundle.Dimension)
	assert.NotNil(t, bundle.SimilarityMap)
	assert.NotNil(t, bundle.Index)
	assert.Equal(t, StatusLoaded, bundle.IndexResult.Status)
}
