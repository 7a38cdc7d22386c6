package router

import (
	"github.com/Hayagreevan-K/recommendation-sys/internal/controller"
	"github.com/Hayagreevan-K/recommendation-sys/pkg/httpframework"
)

const (
	HeathCheckPath = "/health"
)

// Init expects http framework to be initialized before calling this function
func Init(recommendation controller.Recommendation) {
	api := httpframework.Instance().Group("/api")
	{
		v1 := api.Group("/v1")
		products := v1.Group("/products")
		{
			products.GET("", recommendation.FindProducts)
			products.GET("/:id", recommendation.GetProduct)
			products.GET("/:id/similar", recommendation.GetSimilarProducts)
		}
	}

	// Init health check
	httpframework.Instance().GET(HeathCheckPath, controller.Health)
}
