// internal/workers/recommendation/parse-preferences/handler.go
package parsepreferences

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sake-reco/internal/common/camunda"
	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/observability"
	"sake-reco/internal/common/validation"
	"sake-reco/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "parse-preferences"
)

type Handler struct {
	config *Config
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, validator, obs, log),
		logger: log,
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

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}

	var prefs models.Preferences

	temps := input.TempKeys
	if t := strings.TrimSpace(input.Temperature); t != "" {
		temps = append([]string{t}, temps...)
	}
	for _, raw := range temps {
		key, ok := models.ParseTempKey(strings.TrimSpace(raw))
		if !ok {
			return nil, apperrors.NewInvalidPreferencesError(fmt.Sprintf("unknown temperature %q", raw))
		}
		prefs.TempKeys.Add(key)
	}

	for _, tag := range input.StyleTags {
		prefs.StyleTags.Add(strings.TrimSpace(tag))
	}
	for _, tag := range input.TasteTags {
		prefs.TasteTags.Add(strings.TrimSpace(tag))
	}

	// Query tags match style or taste alike, so which set holds them does not
	// change matching.
	for _, tag := range models.SplitTagQuery(input.TagQuery) {
		prefs.TasteTags.Add(tag)
	}

	prefs.FreeText = strings.TrimSpace(input.FreeText)

	h.logger.Debug("preferences parsed", map[string]interface{}{
		"tempKeys": prefs.TempKeys.Len(),
		"tags":     len(prefs.Tokens()),
		"freeText": prefs.FreeText != "",
	})

	return &Output{Preferences: prefs, Empty: prefs.IsEmpty()}, nil
}
