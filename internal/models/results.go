// internal/models/results.go
package models

// RankedResult is one match with its score. Scores only order results
// within a single computation.
type RankedResult struct {
	Item  CatalogItem `json:"item"`
	Score float64     `json:"score"`
}

// SimilarResult is one similarity hit with the reasons it matched.
type SimilarResult struct {
	Item          CatalogItem `json:"item"`
	Score         float64     `json:"score"`
	MatchedPoints []string    `json:"matchedPoints"`
}

// Items strips the scores.
func Items(results []RankedResult) []CatalogItem {
	out := make([]CatalogItem, len(results))
	for i, r := range results {
		out[i] = r.Item
	}
	return out
}
