// internal/workers/recommendation/build-sake-response/handler.go
package buildsakeresponse

import (
	"context"
	"encoding/json"
	"fmt"

	"sake-reco/internal/common/camunda"
	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/observability"
	"sake-reco/internal/common/validation"
	"sake-reco/internal/models"
	"sake-reco/internal/questionnaire"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "build-sake-response"

	MsgLoading = "読み込み中…"
)

type Handler struct {
	config    *Config
	validator *validation.Validator
	runner    *camunda.JobRunner
	logger    logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		validator: validator,
		runner:    camunda.NewJobRunner(TaskType, config.Timeout, validator, obs, log),
		logger:    log,
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

	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	var prefs models.Preferences
	if input.Preferences != nil {
		prefs = *input.Preferences
	}

	output := &Output{
		RequestID: requestID,
		Count:     len(input.Results),
		Items:     BuildItems(input.Results),
		Summary:   questionnaire.SummaryLine(prefs),
	}
	if st := input.CatalogState; st != nil {
		output.Loading = st.Loading
		output.Error = st.Error
	}
	if len(output.Items) == 0 {
		output.Message = EmptyMessage(output.Loading, output.Error)
	}

	if h.config.ValidateOutput && h.validator != nil {
		if err := h.validator.ValidateOutput(TaskType, output); err != nil {
			h.logger.Error("response failed validation", map[string]interface{}{
				"requestId": requestID,
				"error":     err,
			})
			return nil, err
		}
	}

	h.logger.Info("response built", map[string]interface{}{
		"requestId": requestID,
		"count":     output.Count,
	})
	return output, nil
}

// BuildItems turns ranked results into display cards, ranked from 1.
func BuildItems(results []models.RankedResult) []DisplayItem {
	items := make([]DisplayItem, 0, len(results))
	for i, r := range results {
		it := r.Item
		url := it.PurchaseURL()
		items = append(items, DisplayItem{
			ID:              it.ID,
			Name:            it.Name,
			Brewery:         it.Brewery,
			Prefecture:      it.Prefecture,
			Reason:          it.Reason,
			Rank:            i + 1,
			Score:           r.Score,
			PurchaseEnabled: url != "",
			PurchaseURL:     url,
			ImageURL:        it.ImageURL(),
			StyleTags:       nonNil(it.StyleTags),
			TasteTags:       nonNil(it.TasteTags),
			ServeTemp:       serveTemps(it.ServeTemp),
		})
	}
	return items
}

func serveTemps(keys []models.TempKey) []ServeTemp {
	out := make([]ServeTemp, 0, len(keys))
	for _, k := range keys {
		out = append(out, ServeTemp{Key: k, Label: k.Label()})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// EmptyMessage is shown in place of an empty result list. The no-match
// message is kept apart from the loading and error states.
func EmptyMessage(loading bool, errMsg string) string {
	switch {
	case loading:
		return MsgLoading
	case errMsg != "":
		return errMsg
	default:
		return questionnaire.MsgNoMatches
	}
}
