// internal/workers/recommendation/parse-preferences/models.go
package parsepreferences

import "sake-reco/internal/models"

// Input accepts the simple filter form (Temperature, TagQuery, FreeText)
// and explicit lists. Both may be given; they are merged.
type Input struct {
	Temperature string   `json:"temperature,omitempty"`
	TagQuery    string   `json:"tagQuery,omitempty"`
	FreeText    string   `json:"freeText,omitempty"`
	TempKeys    []string `json:"tempKeys,omitempty"`
	StyleTags   []string `json:"styleTags,omitempty"`
	TasteTags   []string `json:"tasteTags,omitempty"`
}

type Output struct {
	Preferences models.Preferences `json:"preferences"`
	Empty       bool               `json:"empty"`
}
