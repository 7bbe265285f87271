// internal/workers/recommendation/questionnaire-step/models.go
package questionnairestep

import (
	"sake-reco/internal/models"
	"sake-reco/internal/questionnaire"
)

// Input carries the session between jobs. A nil session starts a new one.
type Input struct {
	Session *questionnaire.State `json:"session,omitempty"`
	Action  questionnaire.Action `json:"action"`
}

type Output struct {
	Session   questionnaire.State   `json:"session"`
	Step      string                `json:"step"`
	Completed bool                  `json:"completed"`
	Results   []models.RankedResult `json:"results"`
	Summary   string                `json:"summary"`
}
