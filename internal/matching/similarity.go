// internal/matching/similarity.go
package matching

import (
	"fmt"
	"sort"

	"sake-reco/internal/models"
)

const (
	SimilarTasteWeight = 2.0
	SimilarStyleWeight = 1.5
	SimilarTempWeight  = 1.0

	DefaultSimilarLimit = 5
	maxMatchedPoints    = 3
)

// Similar ranks items sharing taste, style or temperature with anchor.
// The anchor itself and zero-score items are excluded. limit only narrows
// the result: at most DefaultSimilarLimit items are ever returned.
func Similar(anchor models.CatalogItem, items []models.CatalogItem, limit int) []models.SimilarResult {
	if limit <= 0 || limit > DefaultSimilarLimit {
		limit = DefaultSimilarLimit
	}

	var results []models.SimilarResult
	for _, cand := range items {
		if cand.ID == anchor.ID {
			continue
		}

		taste := intersect(anchor.TasteTags, cand.TasteTags)
		style := intersect(anchor.StyleTags, cand.StyleTags)
		temp := intersect(anchor.ServeTemp, cand.ServeTemp)

		score := SimilarTasteWeight*float64(len(taste)) +
			SimilarStyleWeight*float64(len(style)) +
			SimilarTempWeight*float64(len(temp))
		if score <= 0 {
			continue
		}

		results = append(results, models.SimilarResult{
			Item:          cand,
			Score:         score,
			MatchedPoints: matchedPoints(taste, style, temp),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func matchedPoints(taste, style []string, temp []models.TempKey) []string {
	points := make([]string, 0, maxMatchedPoints)
	for _, t := range taste {
		points = append(points, fmt.Sprintf("味わいが「%s」", t))
	}
	for _, t := range style {
		points = append(points, fmt.Sprintf("スタイルが「%s」", t))
	}
	for _, k := range temp {
		points = append(points, fmt.Sprintf("「%s」で楽しめる", k.Label()))
	}
	if len(points) > maxMatchedPoints {
		points = points[:maxMatchedPoints]
	}
	return points
}

// intersect keeps a's order and drops duplicates.
func intersect[T comparable](a, b []T) []T {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[T]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}
	seen := make(map[T]struct{}, len(a))
	var out []T
	for _, v := range a {
		if _, ok := inB[v]; !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
