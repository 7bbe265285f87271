// internal/workers/recommendation/match-sake/models.go
package matchsake

import (
	"sake-reco/internal/catalog"
	"sake-reco/internal/models"
)

const (
	ModeQuestionnaire = "questionnaire"
	ModeFilter        = "filter"
)

type Input struct {
	Preferences models.Preferences `json:"preferences"`
	// Mode defaults to questionnaire.
	Mode string `json:"mode,omitempty"`
}

type Output struct {
	Results      []models.RankedResult `json:"results"`
	Count        int                   `json:"count"`
	Mode         string                `json:"mode"`
	CatalogState catalog.State         `json:"catalogState"`
	// NoMatches is set only when a loaded catalog produced nothing, so an
	// empty result during loading or after an error is not reported as such.
	NoMatches bool `json:"noMatches"`
}
