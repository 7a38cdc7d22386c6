package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Hayagreevan-K/recommendation-sys/internal/service"
)

// Recommendation is the HTTP surface over the recommendation service
type Recommendation interface {
	FindProducts(ctx *gin.Context)
	GetProduct(ctx *gin.Context)
	GetSimilarProducts(ctx *gin.Context)
}

type RecommendationController struct {
	service  *service.Service
	defaultK int
	maxK     int
}

func NewRecommendationController(svc *service.Service, defaultK, maxK int) Recommendation {
	return &RecommendationController{
		service:  svc,
		defaultK: defaultK,
		maxK:     maxK,
	}
}

// FindProducts handles GET /api/v1/products?query=&limit=
func (r *RecommendationController) FindProducts(ctx *gin.Context) {
	limit, ok := parsePositiveIntQuery(ctx, "limit", 0)
	if !ok {
		return
	}

	products, err := r.service.FindCandidates(ctx.Query("query"), limit)
	if err != nil {
		log.Error().Err(err).Msg("Find candidates failed")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, ProductListResponse{Products: toProductResponses(products)})
}

// GetProduct handles GET /api/v1/products/:id
func (r *RecommendationController) GetProduct(ctx *gin.Context) {
	id := ctx.Param("id")
	product, ok := r.service.Lookup(id)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "product " + id + " not found"})
		return
	}
	ctx.JSON(http.StatusOK, toProductResponse(product))
}

// GetSimilarProducts handles GET /api/v1/products/:id/similar?k=
func (r *RecommendationController) GetSimilarProducts(ctx *gin.Context) {
	id := ctx.Param("id")
	k, ok := parsePositiveIntQuery(ctx, "k", r.defaultK)
	if !ok {
		return
	}
	if k > r.maxK {
		k = r.maxK
	}

	products, err := r.service.Recommend(id, k)
	if err != nil {
		log.Error().Err(err).Msgf("Recommend failed for %s", id)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := RecommendationResponse{
		ProductID:       id,
		Recommendations: toProductResponses(products),
	}
	if len(products) == 0 {
		response.Message = "no similar items"
	}
	ctx.JSON(http.StatusOK, response)
}

// parsePositiveIntQuery returns the parsed query value or the fallback when
// the parameter is unset. Writes a 400 and returns ok=false on bad input.
func parsePositiveIntQuery(ctx *gin.Context, name string, fallback int) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter: " + raw})
		return 0, false
	}
	return value, true
}
