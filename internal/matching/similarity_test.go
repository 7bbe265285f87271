// internal/matching/similarity_test.go
package matching

import (
	"fmt"
	"testing"

	"sake-reco/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func similarIDs(results []models.SimilarResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Item.ID
	}
	return out
}

func TestSimilar_ScoringAndPoints(t *testing.T) {
	anchor := models.CatalogItem{
		ID:        "anchor",
		StyleTags: []string{"食中酒", "クラシック"},
		TasteTags: []string{"辛口", "旨味"},
		ServeTemp: []models.TempKey{models.TempCold, models.TempWarm},
	}
	items := []models.CatalogItem{
		anchor,
		{ID: "temp-only", ServeTemp: []models.TempKey{models.TempWarm}},
		{ID: "nothing", TasteTags: []string{"甘口"}},
		{
			ID:        "rich",
			StyleTags: []string{"クラシック"},
			TasteTags: []string{"旨味", "辛口"},
			ServeTemp: []models.TempKey{models.TempCold},
		},
		{ID: "style-only", StyleTags: []string{"食中酒"}},
	}

	results := Similar(anchor, items, 0)

	require.Equal(t, []string{"rich", "style-only", "temp-only"}, similarIDs(results))
	assert.Equal(t, 6.5, results[0].Score)
	assert.Equal(t, []string{"味わいが「辛口」", "味わいが「旨味」", "スタイルが「クラシック」"}, results[0].MatchedPoints)
	assert.Equal(t, 1.5, results[1].Score)
	assert.Equal(t, []string{"スタイルが「食中酒」"}, results[1].MatchedPoints)
	assert.Equal(t, 1.0, results[2].Score)
	assert.Equal(t, []string{"「燗」で楽しめる"}, results[2].MatchedPoints)
}

func TestSimilar_ExcludesAnchor(t *testing.T) {
	anchor := models.CatalogItem{ID: "a", TasteTags: []string{"辛口"}}
	items := []models.CatalogItem{anchor, anchor, {ID: "b", TasteTags: []string{"辛口"}}}

	results := Similar(anchor, items, 10)

	assert.Equal(t, []string{"b"}, similarIDs(results))
}

func TestSimilar_TruncatesAndKeepsCatalogOrder(t *testing.T) {
	anchor := models.CatalogItem{ID: "anchor", TasteTags: []string{"辛口"}}
	items := []models.CatalogItem{anchor}
	for i := 0; i < 8; i++ {
		items = append(items, models.CatalogItem{ID: fmt.Sprintf("s%d", i), TasteTags: []string{"辛口"}})
	}

	results := Similar(anchor, items, 0)

	assert.Equal(t, []string{"s0", "s1", "s2", "s3", "s4"}, similarIDs(results))
	assert.Len(t, Similar(anchor, items, 3), 3)
	assert.Equal(t, []string{"s0", "s1", "s2", "s3", "s4"}, similarIDs(Similar(anchor, items, 10)))
}

func TestSimilar_MissingFieldsScoreZero(t *testing.T) {
	anchor := models.CatalogItem{ID: "a"}
	items := []models.CatalogItem{{ID: "b"}, {ID: "c", TasteTags: []string{"辛口"}}}

	assert.Empty(t, Similar(anchor, items, 5))
}
