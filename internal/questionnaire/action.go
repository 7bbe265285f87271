// internal/questionnaire/action.go
package questionnaire

import (
	"fmt"

	"sake-reco/internal/models"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionChooseScene     ActionType = "chooseScene"
	ActionSkipScene       ActionType = "skipScene"
	ActionChooseDirection ActionType = "chooseDirection"
	ActionToggleBody      ActionType = "toggleBody"
	ActionConfirmBody     ActionType = "confirmBody"
	ActionToggleTemp      ActionType = "toggleTemp"
	ActionConfirmTemp     ActionType = "confirmTemp"
	ActionSetFreeText     ActionType = "setFreeText"
	ActionSubmit          ActionType = "submit"
	ActionSkip            ActionType = "skip"
	ActionReset           ActionType = "reset"
)

// Action is the wire form of a questionnaire action.
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value,omitempty"`
}

// Apply dispatches a to the matching Session method.
func Apply(s *Session, a Action) error {
	switch a.Type {
	case ActionChooseScene:
		return s.ChooseScene(a.Value)
	case ActionSkipScene:
		return s.SkipScene()
	case ActionChooseDirection:
		return s.ChooseDirection(a.Value)
	case ActionToggleBody:
		return s.ToggleBody(a.Value)
	case ActionConfirmBody:
		return s.ConfirmBody()
	case ActionToggleTemp:
		return s.ToggleTemp(a.Value)
	case ActionConfirmTemp:
		return s.ConfirmTemp()
	case ActionSetFreeText:
		return s.SetFreeText(a.Value)
	case ActionSubmit:
		return s.Submit()
	case ActionSkip:
		return s.Skip()
	case ActionReset:
		s.Reset()
		return nil
	default:
		return fmt.Errorf("%w: unknown action type %q", ErrInvalidAction, a.Type)
	}
}

// ApplyAll applies actions in order and stops at the first error.
func ApplyAll(s *Session, actions []Action) error {
	for i, a := range actions {
		if err := Apply(s, a); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	return nil
}

// State is the serializable form of a Session, carried in process
// variables between questionnaire-step jobs.
type State struct {
	ID          string                `json:"id"`
	Step        Step                  `json:"step"`
	Completed   bool                  `json:"completed"`
	Preferences models.Preferences    `json:"preferences"`
	Transcript  []Message             `json:"transcript"`
	Results     []models.RankedResult `json:"results,omitempty"`
}

func (s *Session) Snapshot() State {
	return State{
		ID:          s.id,
		Step:        s.step,
		Completed:   s.Completed(),
		Preferences: s.prefs.Clone(),
		Transcript:  s.Transcript(),
		Results:     s.results,
	}
}

// Restore rebuilds a session from st. Results are carried as-is; call
// Rematch to refresh them against the current catalog.
func Restore(st State, matcher Matcher) (*Session, error) {
	if !st.Step.Valid() {
		return nil, fmt.Errorf("%w: invalid step %d", ErrInvalidAction, int(st.Step))
	}
	if st.Completed != (st.Step == StepCompleted) {
		return nil, fmt.Errorf("%w: completed flag disagrees with step %s", ErrInvalidAction, st.Step)
	}
	id := st.ID
	if id == "" {
		id = uuid.NewString()
	}
	transcript := make([]Message, len(st.Transcript))
	copy(transcript, st.Transcript)
	return &Session{
		id:         id,
		step:       st.Step,
		prefs:      st.Preferences.Clone(),
		transcript: transcript,
		results:    st.Results,
		matcher:    matcher,
	}, nil
}
