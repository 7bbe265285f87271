// internal/workers/recommendation/match-sake/handler.go
package matchsake

import (
	"context"
	"encoding/json"
	"fmt"

	"sake-reco/internal/catalog"
	"sake-reco/internal/common/camunda"
	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/metrics"
	"sake-reco/internal/common/observability"
	"sake-reco/internal/common/validation"
	"sake-reco/internal/matching"
	"sake-reco/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "match-sake"
)

// Catalog is the read side of catalog.Store.
type Catalog interface {
	Items() []models.CatalogItem
	State() catalog.State
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

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}

	mode := input.Mode
	var opts matching.Options
	switch mode {
	case "", ModeQuestionnaire:
		mode = ModeQuestionnaire
		opts = matching.Options{Limit: h.config.QuestionnaireLimit}
	case ModeFilter:
		opts = matching.FilterOptions()
	default:
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("unknown mode %q", input.Mode))
	}

	for _, k := range input.Preferences.TempKeys.Values() {
		if !k.Valid() {
			return nil, apperrors.NewInvalidPreferencesError(fmt.Sprintf("unknown temperature %q", k))
		}
	}

	// State is read before items; a load landing in between only makes it stale.
	state := h.catalog.State()
	results := matching.Match(h.catalog.Items(), input.Preferences, opts)
	metrics.MatchResults.WithLabelValues(mode).Observe(float64(len(results)))

	h.logger.Info("match completed", map[string]interface{}{
		"mode":         mode,
		"catalogCount": state.Count,
		"resultCount":  len(results),
	})

	return &Output{
		Results:      results,
		Count:        len(results),
		Mode:         mode,
		CatalogState: state,
		NoMatches:    len(results) == 0 && !state.Loading && state.Error == "",
	}, nil
}
