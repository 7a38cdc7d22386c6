package main

import (
	"github.com/rs/zerolog/log"

	"github.com/Hayagreevan-K/recommendation-sys/internal/artifact"
	"github.com/Hayagreevan-K/recommendation-sys/internal/catalog"
	"github.com/Hayagreevan-K/recommendation-sys/internal/config"
	"github.com/Hayagreevan-K/recommendation-sys/internal/controller"
	"github.com/Hayagreevan-K/recommendation-sys/internal/resolver"
	"github.com/Hayagreevan-K/recommendation-sys/internal/router"
	"github.com/Hayagreevan-K/recommendation-sys/internal/server"
	"github.com/Hayagreevan-K/recommendation-sys/internal/service"
	"github.com/Hayagreevan-K/recommendation-sys/pkg/httpframework"
	"github.com/Hayagreevan-K/recommendation-sys/pkg/inmemorycache"
	"github.com/Hayagreevan-K/recommendation-sys/pkg/logger"
	"github.com/Hayagreevan-K/recommendation-sys/pkg/metric"
)

const recCacheName = "rec_cache"

func main() {
	config.Init()
	appConfig := config.GetAppConfig()
	logger.Init()
	metric.Init()

	// Artifacts load eagerly, once, before the server accepts traffic.
	// Optional artifacts degrade; only a missing catalog halts startup.
	bundle, err := artifact.LoadBundle(appConfig)
	if err != nil {
		log.Panic().Err(err).Msgf("Cannot serve recommendations: %v", err)
	}

	cat, err := catalog.New(bundle.Products)
	if err != nil {
		log.Panic().Err(err).Msg("Catalog table is inconsistent")
	}
	log.Info().Msgf("Catalog loaded with %d products (similarity map: %s, ANN index: %s, dimension: %d)",
		cat.Len(), bundle.SimilarityResult.Status, bundle.IndexResult.Status, bundle.Dimension)

	recCache := inmemorycache.NewV1InMemoryCache(recCacheName, appConfig.RecCacheSizeInMb)
	svc := service.New(
		cat,
		resolver.New(cat, bundle.SimilarityMap, bundle.Index),
		recCache,
		appConfig.RecCacheTTLSeconds,
		appConfig.DefaultSearchLimit,
	)

	httpframework.Init()
	router.Init(controller.NewRecommendationController(svc, appConfig.DefaultNeighborK, appConfig.MaxNeighborK))

	log.Info().Msgf("Starting server on port %d", appConfig.Port)
	server.InitServer(appConfig.Port)
}
