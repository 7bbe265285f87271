// internal/api/views.go
package api

import (
	"sake-reco/internal/models"
	"sake-reco/internal/questionnaire"
	buildsakeresponse "sake-reco/internal/workers/recommendation/build-sake-response"
)

// SessionView is what the display collaborator renders for a session.
type SessionView struct {
	ID          string                          `json:"id"`
	Step        string                          `json:"step"`
	StepNumber  int                             `json:"stepNumber"`
	TotalSteps  int                             `json:"totalSteps"`
	Completed   bool                            `json:"completed"`
	Options     []questionnaire.Option          `json:"options,omitempty"`
	Preferences models.Preferences              `json:"preferences"`
	Transcript  []questionnaire.Message         `json:"transcript"`
	Summary     string                          `json:"summary"`
	Results     []buildsakeresponse.DisplayItem `json:"results"`
	Message     string                          `json:"message,omitempty"`
}

func newSessionView(s *questionnaire.Session) SessionView {
	step := s.Step()
	number := int(step)
	if number > questionnaire.TotalSteps {
		number = questionnaire.TotalSteps
	}
	view := SessionView{
		ID:          s.ID(),
		Step:        step.String(),
		StepNumber:  number,
		TotalSteps:  questionnaire.TotalSteps,
		Completed:   s.Completed(),
		Options:     optionsFor(step),
		Preferences: s.Preferences(),
		Transcript:  s.Transcript(),
		Summary:     s.Summary(),
		Results:     buildsakeresponse.BuildItems(s.Results()),
	}
	return view
}

func optionsFor(step questionnaire.Step) []questionnaire.Option {
	switch step {
	case questionnaire.StepScene:
		return questionnaire.SceneOptions
	case questionnaire.StepDirection:
		return questionnaire.DirectionOptions
	case questionnaire.StepBody:
		return questionnaire.BodyOptions
	case questionnaire.StepTemp:
		return questionnaire.TempOptions()
	default:
		return nil
	}
}
