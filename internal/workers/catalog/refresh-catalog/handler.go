// internal/workers/catalog/refresh-catalog/handler.go
package refreshcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sake-reco/internal/catalog"
	"sake-reco/internal/common/camunda"
	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/observability"
	"sake-reco/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "refresh-catalog"
)

// Loader is the part of catalog.Store the worker needs.
type Loader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
	State() catalog.State
}

type Handler struct {
	config  *Config
	catalog Loader
	obs     *observability.Observability
	runner  *camunda.JobRunner
	logger  logger.Logger
}

func NewHandler(config *Config, store Loader, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: store,
		obs:     obs,
		runner:  camunda.NewJobRunner(TaskType, config.Timeout, validator, obs, log),
		logger:  log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, job entities.Job) (interface{}, error) {
		var input Input
		if job.Variables != "" {
			if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
				return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
			}
		}
		return h.Execute(ctx, &input)
	})
}

// Execute runs one catalog load. Fetch failures are reported in the output,
// not returned, since the store keeps serving the previous snapshot.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		input = &Input{}
	}

	snap, err := h.catalog.Load(ctx)
	if err != nil {
		h.obs.RecordCatalogLoad(ctx, "failure")
		state := h.catalog.State()
		h.logger.Warn("catalog refresh failed", map[string]interface{}{
			"reason": input.Reason,
			"error":  err,
			"kept":   state.Count,
		})
		return &Output{
			OK:        false,
			Count:     state.Count,
			Error:     state.Error,
			ErrorCode: string(apperrors.CodeOf(err)),
		}, nil
	}

	h.obs.RecordCatalogLoad(ctx, "success")
	h.logger.Info("catalog refreshed", map[string]interface{}{
		"reason": input.Reason,
		"count":  len(snap.Items),
	})
	return &Output{
		OK:       true,
		Count:    len(snap.Items),
		LoadedAt: snap.LoadedAt.UTC().Format(time.RFC3339),
	}, nil
}
