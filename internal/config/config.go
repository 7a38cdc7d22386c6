package config

import (
	"sync"

	"github.com/spf13/viper"
)

// DefaultEmbeddingDimension is used when no dimension hint artifact is
// available or loadable. It must match the dimension the serving artifacts
// were built with; override via DEFAULT_EMBEDDING_DIMENSION.
const DefaultEmbeddingDimension = 32

var (
	appConfig AppConfig
	once      sync.Once
)

type AppConfig struct {
	AppName     string
	AppEnv      string
	AppLogLevel string
	Port        int

	ModelDir           string
	CatalogFile        string
	CatalogFallback    string
	SimilarityMapFile  string
	AnnIndexFile       string
	DimensionHintFile  string
	EmbeddingDimension int

	RecCacheSizeInMb    int
	RecCacheTTLSeconds  int
	DefaultSearchLimit  int
	DefaultNeighborK    int
	MaxNeighborK        int
}

// Init binds environment variables and loads defaults. Called once from main.
func Init() {
	once.Do(func() {
		viper.AutomaticEnv()

		viper.SetDefault("APP_NAME", "recommendation-sys")
		viper.SetDefault("APP_ENV", "dev")
		viper.SetDefault("APP_LOG_LEVEL", "INFO")
		viper.SetDefault("APP_PORT", 8080)

		viper.SetDefault("MODEL_DIR", "models")
		viper.SetDefault("CATALOG_FILE", "catalog.csv")
		viper.SetDefault("CATALOG_FALLBACK_FILE", "catalog.json")
		viper.SetDefault("SIMILARITY_MAP_FILE", "similarity_map.json")
		viper.SetDefault("ANN_INDEX_FILE", "embeddings.ann")
		viper.SetDefault("DIMENSION_HINT_FILE", "reducer.json")
		viper.SetDefault("DEFAULT_EMBEDDING_DIMENSION", DefaultEmbeddingDimension)

		viper.SetDefault("REC_CACHE_SIZE_IN_MB", 16)
		viper.SetDefault("REC_CACHE_TTL_SECONDS", 300)
		viper.SetDefault("DEFAULT_SEARCH_LIMIT", 30)
		viper.SetDefault("DEFAULT_NEIGHBOR_K", 5)
		viper.SetDefault("MAX_NEIGHBOR_K", 100)

		appConfig = AppConfig{
			AppName:     viper.GetString("APP_NAME"),
			AppEnv:      viper.GetString("APP_ENV"),
			AppLogLevel: viper.GetString("APP_LOG_LEVEL"),
			Port:        viper.GetInt("APP_PORT"),

			ModelDir:           viper.GetString("MODEL_DIR"),
			CatalogFile:        viper.GetString("CATALOG_FILE"),
			CatalogFallback:    viper.GetString("CATALOG_FALLBACK_FILE"),
			SimilarityMapFile:  viper.GetString("SIMILARITY_MAP_FILE"),
			AnnIndexFile:       viper.GetString("ANN_INDEX_FILE"),
			DimensionHintFile:  viper.GetString("DIMENSION_HINT_FILE"),
			EmbeddingDimension: viper.GetInt("DEFAULT_EMBEDDING_DIMENSION"),

			RecCacheSizeInMb:   viper.GetInt("REC_CACHE_SIZE_IN_MB"),
			RecCacheTTLSeconds: viper.GetInt("REC_CACHE_TTL_SECONDS"),
			DefaultSearchLimit: viper.GetInt("DEFAULT_SEARCH_LIMIT"),
			DefaultNeighborK:   viper.GetInt("DEFAULT_NEIGHBOR_K"),
			MaxNeighborK:       viper.GetInt("MAX_NEIGHBOR_K"),
		}
	})
}

// GetAppConfig returns the loaded config. Init must have been called.
func GetAppConfig() *AppConfig {
	return &appConfig
}
