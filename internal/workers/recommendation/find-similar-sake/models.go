// internal/workers/recommendation/find-similar-sake/models.go
package findsimilarsake

import "sake-reco/internal/models"

type Input struct {
	AnchorID string `json:"anchorId"`
	// Limit <= 0 uses the configured default.
	Limit int `json:"limit,omitempty"`
}

type Output struct {
	Anchor  models.CatalogItem     `json:"anchor"`
	Results []models.SimilarResult `json:"results"`
	Count   int                    `json:"count"`
}
