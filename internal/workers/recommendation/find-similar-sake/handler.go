// internal/workers/recommendation/find-similar-sake/handler.go
package findsimilarsake

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
	"sake-reco/internal/matching"
	"sake-reco/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "find-similar-sake"
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

// Execute ranks the catalog against the anchor. The anchor and the
// candidates come from one snapshot.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.AnchorID) == "" {
		return nil, apperrors.NewInvalidInputError("anchorId is required")
	}

	items := h.catalog.Items()
	anchor, ok := models.FindItem(items, input.AnchorID)
	if !ok {
		return nil, apperrors.NewAnchorNotFoundError(input.AnchorID)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}
	limit = min(limit, matching.DefaultSimilarLimit)

	results := matching.Similar(anchor, items, limit)
	if results == nil {
		results = []models.SimilarResult{}
	}

	h.logger.Info("similar items found", map[string]interface{}{
		"anchorId": anchor.ID,
		"count":    len(results),
	})

	return &Output{
		Anchor:  anchor,
		Results: results,
		Count:   len(results),
	}, nil
}
