// internal/workers/recommendation/questionnaire-step/handler.go
package questionnairestep

import (
	"context"
	"encoding/json"
	"fmt"

	"sake-reco/internal/common/camunda"
	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/observability"
	"sake-reco/internal/common/validation"
	"sake-reco/internal/matching"
	"sake-reco/internal/models"
	"sake-reco/internal/questionnaire"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "questionnaire-step"
)

type Catalog interface {
	Items() []models.CatalogItem
}

type Handler struct {
	config  *Config
	catalog Catalog
	runner  *camunda.JobRunner
	logger  logger.Logger
}

func NewHandler(config *Config, store Catalog, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: store,
		runner:  camunda.NewJobRunner(TaskType, config.Timeout, validator, obs, log),
		logger:  log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, job entities.Job) (interface{}, error) {
		var input Input
		if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
		}
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) matcher(prefs models.Preferences) []models.RankedResult {
	return matching.Match(h.catalog.Items(), prefs, matching.Options{Limit: h.config.ResultLimit})
}

// Execute restores the session, applies one action and returns the new state.
// A rejected action leaves the carried session untouched.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}

	var session *questionnaire.Session
	if input.Session == nil {
		session = questionnaire.NewSession(h.matcher)
	} else {
		restored, err := questionnaire.Restore(*input.Session, h.matcher)
		if err != nil {
			return nil, apperrors.NewInvalidInputError(err.Error())
		}
		session = restored
	}

	step := session.Step()
	if err := questionnaire.Apply(session, input.Action); err != nil {
		h.logger.Warn("action rejected", map[string]interface{}{
			"sessionId": session.ID(),
			"step":      step.String(),
			"action":    string(input.Action.Type),
			"error":     err,
		})
		return nil, questionnaire.AsStandardError(err, step, input.Action)
	}

	results := session.Results()
	if results == nil {
		results = []models.RankedResult{}
	}

	h.logger.Info("questionnaire step applied", map[string]interface{}{
		"sessionId": session.ID(),
		"from":      step.String(),
		"to":        session.Step().String(),
		"results":   len(results),
	})

	return &Output{
		Session:   session.Snapshot(),
		Step:      session.Step().String(),
		Completed: session.Completed(),
		Results:   results,
		Summary:   session.Summary(),
	}, nil
}
