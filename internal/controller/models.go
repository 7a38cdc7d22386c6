package controller

import "github.com/Hayagreevan-K/recommendation-sys/internal/catalog"

// ProductResponse is the wire shape for one catalog record
type ProductResponse struct {
	ProductID string            `json:"product_id"`
	Title     string            `json:"title"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// ProductListResponse wraps search results
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// RecommendationResponse wraps a recommendation list. Message is set when
// the list is empty to distinguish "no similar items" from an error.
type RecommendationResponse struct {
	ProductID       string            `json:"product_id"`
	Recommendations []ProductResponse `json:"recommendations"`
	Message         string            `json:"message,omitempty"`
}

func toProductResponse(p catalog.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ID,
		Title:     p.Title,
		Extra:     p.Extra,
	}
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = toProductResponse(p)
	}
	return responses
}
