// Package questionnaire drives the five-step preference questionnaire. Each
// step accepts only its own actions, so a session can never skip ahead or go
// back except through Reset.
package questionnaire

import (
	"errors"
	"fmt"
	"strings"

	"sake-reco/internal/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidAction = errors.New("INVALID_STEP_ACTION")
	ErrUnknownOption = errors.New("UNKNOWN_OPTION")
)

// Step is a questionnaire state.
type Step int

const (
	StepScene Step = iota + 1
	StepDirection
	StepBody
	StepTemp
	StepFreeText
	StepCompleted
)

// TotalSteps is the number of question steps before completion.
const TotalSteps = 5

var stepNames = map[Step]string{
	StepScene:     "scene",
	StepDirection: "direction",
	StepBody:      "body",
	StepTemp:      "temperature",
	StepFreeText:  "freeText",
	StepCompleted: "completed",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) Valid() bool {
	return s >= StepScene && s <= StepCompleted
}

var prompts = map[Step]string{
	StepScene:     MsgQ1,
	StepDirection: MsgQ2,
	StepBody:      MsgQ3,
	StepTemp:      MsgQ4,
	StepFreeText:  MsgQ5,
}

// Matcher ranks the catalog for the collected preferences.
type Matcher func(prefs models.Preferences) []models.RankedResult

// Session is one run of the questionnaire. It is not safe for concurrent use.
type Session struct {
	id         string
	step       Step
	prefs      models.Preferences
	transcript []Message
	results    []models.RankedResult
	matcher    Matcher
}

// NewSession starts at the scene step with the intro transcript.
func NewSession(matcher Matcher) *Session {
	s := &Session{id: uuid.NewString(), matcher: matcher}
	s.reset()
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Step() Step { return s.step }

func (s *Session) Completed() bool { return s.step == StepCompleted }

// Preferences returns a copy of the collected preferences.
func (s *Session) Preferences() models.Preferences { return s.prefs.Clone() }

// Transcript returns a copy of the messages so far.
func (s *Session) Transcript() []Message {
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Results are empty until the session completes.
func (s *Session) Results() []models.RankedResult { return s.results }

// Summary is the conditions line for the collected preferences.
func (s *Session) Summary() string { return SummaryLine(s.prefs) }

func (s *Session) expect(step Step, action ActionType) error {
	if s.step != step {
		return fmt.Errorf("%w: %s not accepted in step %s", ErrInvalidAction, action, s.step)
	}
	return nil
}

// ==========================
// Step 1: scene
// ==========================

// ChooseScene sets the single scene tag and moves to the direction step.
func (s *Session) ChooseScene(value string) error {
	if err := s.expect(StepScene, ActionChooseScene); err != nil {
		return err
	}
	opt, ok := findOption(SceneOptions, value)
	if !ok {
		return fmt.Errorf("%w: scene %q", ErrUnknownOption, value)
	}
	s.prefs.StyleTags.Clear()
	s.prefs.StyleTags.Add(opt.Tag)
	s.advance(opt.Label)
	return nil
}

// SkipScene moves on without a scene tag.
func (s *Session) SkipScene() error {
	if err := s.expect(StepScene, ActionSkipScene); err != nil {
		return err
	}
	s.prefs.StyleTags.Clear()
	s.advance("シーン：" + unspecified)
	return nil
}

// ==========================
// Step 2: direction
// ==========================

// ChooseDirection replaces any previous direction tag; body tags are kept.
func (s *Session) ChooseDirection(value string) error {
	if err := s.expect(StepDirection, ActionChooseDirection); err != nil {
		return err
	}
	opt, ok := findOption(DirectionOptions, value)
	if !ok {
		return fmt.Errorf("%w: direction %q", ErrUnknownOption, value)
	}
	s.prefs.TasteTags.ReplaceWithin(tags(DirectionOptions), opt.Tag)
	s.advance(opt.Label)
	return nil
}

// ==========================
// Step 3: body
// ==========================

// ToggleBody flips one body tag. It does not advance.
func (s *Session) ToggleBody(value string) error {
	if err := s.expect(StepBody, ActionToggleBody); err != nil {
		return err
	}
	opt, ok := findOption(BodyOptions, value)
	if !ok {
		return fmt.Errorf("%w: body %q", ErrUnknownOption, value)
	}
	s.prefs.TasteTags.Toggle(opt.Tag)
	return nil
}

// ConfirmBody records the chosen body tags, possibly none, and advances.
func (s *Session) ConfirmBody() error {
	if err := s.expect(StepBody, ActionConfirmBody); err != nil {
		return err
	}
	chosen := within(s.prefs.TasteTags.Values(), BodyOptions)
	s.advance("質感：" + joinOrUnspecified(chosen))
	return nil
}

// ==========================
// Step 4: temperature
// ==========================

func (s *Session) ToggleTemp(value string) error {
	if err := s.expect(StepTemp, ActionToggleTemp); err != nil {
		return err
	}
	key, ok := models.ParseTempKey(strings.TrimSpace(value))
	if !ok {
		key, ok = tempByLabel(value)
	}
	if !ok {
		return fmt.Errorf("%w: temperature %q", ErrUnknownOption, value)
	}
	s.prefs.TempKeys.Toggle(key)
	return nil
}

func (s *Session) ConfirmTemp() error {
	if err := s.expect(StepTemp, ActionConfirmTemp); err != nil {
		return err
	}
	s.advance("温度：" + joinOrUnspecified(tempLabels(s.prefs.TempKeys.Values())))
	return nil
}

func tempByLabel(label string) (models.TempKey, bool) {
	label = strings.TrimSpace(label)
	for _, k := range models.AllTempKeys {
		if k.Label() == label {
			return k, true
		}
	}
	return "", false
}

// ==========================
// Step 5: free text
// ==========================

// SetFreeText stores the draft text without advancing.
func (s *Session) SetFreeText(text string) error {
	if err := s.expect(StepFreeText, ActionSetFreeText); err != nil {
		return err
	}
	s.prefs.FreeText = text
	return nil
}

// Submit completes the session keeping the typed text, even if empty.
func (s *Session) Submit() error {
	if err := s.expect(StepFreeText, ActionSubmit); err != nil {
		return err
	}
	s.complete()
	return nil
}

// Skip clears the free text and completes the session.
func (s *Session) Skip() error {
	if err := s.expect(StepFreeText, ActionSkip); err != nil {
		return err
	}
	s.prefs.FreeText = ""
	s.complete()
	return nil
}

// ==========================
// Reset and matching
// ==========================

// Reset returns to the scene step from any state, clearing preferences,
// results and the transcript.
func (s *Session) Reset() {
	s.reset()
}

// Rematch re-runs matching for a completed session, e.g. after a catalog
// refresh. The questionnaire state is untouched.
func (s *Session) Rematch() ([]models.RankedResult, error) {
	if !s.Completed() {
		return nil, fmt.Errorf("%w: rematch not accepted in step %s", ErrInvalidAction, s.step)
	}
	s.results = s.runMatcher()
	return s.results, nil
}

func (s *Session) reset() {
	s.step = StepScene
	s.prefs = models.Preferences{}
	s.results = nil
	s.transcript = []Message{
		newMessage(RoleBot, MsgIntro),
		newMessage(RoleBot, MsgQ1),
	}
}

// advance echoes the answer, moves one step forward and prompts for it.
func (s *Session) advance(echo string) {
	s.say(RoleUser, echo)
	s.step++
	s.say(RoleBot, prompts[s.step])
}

func (s *Session) complete() {
	text := strings.TrimSpace(s.prefs.FreeText)
	if text == "" {
		text = noFreeText
	}
	s.say(RoleUser, text)
	s.say(RoleBot, MsgClosing)
	s.step = StepCompleted
	s.results = s.runMatcher()
}

func (s *Session) runMatcher() []models.RankedResult {
	if s.matcher == nil {
		return nil
	}
	return s.matcher(s.prefs.Clone())
}

func (s *Session) say(role Role, text string) {
	s.transcript = append(s.transcript, newMessage(role, text))
}

func joinOrUnspecified(values []string) string {
	if len(values) == 0 {
		return unspecified
	}
	return strings.Join(values, listJoin)
}
