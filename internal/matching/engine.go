// Package matching ranks catalog items against user preferences and finds
// items similar to a chosen anchor. Both engines are pure functions over an
// in-memory catalog snapshot.
package matching

import (
	"sort"
	"strings"

	"sake-reco/internal/models"
)

// Score weights for Match.
const (
	TagWeight          = 2.0
	TempWeight         = 1.0
	AffiliateBonus     = 1.0
	ImageBonus         = 1.0
	FreeTextWeight     = 1.0
	QuestionnaireLimit = 20
)

// Options controls truncation. Limit <= 0 returns every surviving item.
type Options struct {
	Limit int
}

// QuestionnaireOptions caps results at 20.
func QuestionnaireOptions() Options {
	return Options{Limit: QuestionnaireLimit}
}

// FilterOptions returns the full filtered and sorted sequence.
func FilterOptions() Options {
	return Options{}
}

// Match filters items by temperature and tags, scores the survivors and
// returns them sorted by descending score. Ties keep catalog order.
func Match(items []models.CatalogItem, prefs models.Preferences, opts Options) []models.RankedResult {
	temps := prefs.TempKeys.Values()
	tokens := prefs.Tokens()
	words := prefs.FreeTextTokens()

	results := make([]models.RankedResult, 0, len(items))
	for _, item := range items {
		tempHits := countTempHits(item, temps)
		if len(temps) > 0 && tempHits == 0 {
			continue
		}
		tagHits := countTagHits(item, tokens)
		if len(tokens) > 0 && tagHits == 0 {
			continue
		}

		score := TagWeight*float64(tagHits) + TempWeight*float64(tempHits)
		if item.HasAffiliate() {
			score += AffiliateBonus
		}
		if item.HasImage() {
			score += ImageBonus
		}
		score += FreeTextWeight * float64(countFreeTextHits(item, words))

		results = append(results, models.RankedResult{Item: item, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// MatchItems is Match without scores.
func MatchItems(items []models.CatalogItem, prefs models.Preferences, opts Options) []models.CatalogItem {
	return models.Items(Match(items, prefs, opts))
}

func countTempHits(item models.CatalogItem, temps []models.TempKey) int {
	n := 0
	for _, k := range temps {
		if item.ServesAt(k) {
			n++
		}
	}
	return n
}

func countTagHits(item models.CatalogItem, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	tags := make(map[string]struct{}, len(item.StyleTags)+len(item.TasteTags))
	for _, t := range item.StyleTags {
		tags[t] = struct{}{}
	}
	for _, t := range item.TasteTags {
		tags[t] = struct{}{}
	}
	n := 0
	for _, tok := range tokens {
		if _, ok := tags[tok]; ok {
			n++
		}
	}
	return n
}

func countFreeTextHits(item models.CatalogItem, words []string) int {
	if len(words) == 0 {
		return 0
	}
	hay := strings.ToLower(item.Name + " " + item.Brewery + " " + item.Prefecture)
	n := 0
	for _, w := range words {
		if strings.Contains(hay, w) {
			n++
		}
	}
	return n
}
