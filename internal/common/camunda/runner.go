// internal/common/camunda/runner.go
package camunda

import (
	"context"
	"time"

	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/metrics"
	"sake-reco/internal/common/observability"
	"sake-reco/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

// JobFunc does the work of one job and returns the variables to complete it with.
type JobFunc func(ctx context.Context, job entities.Job) (interface{}, error)

// JobRunner carries the plumbing every worker shares: timeout, tracing,
// input schema validation, metrics and the complete/fail decision.
type JobRunner struct {
	taskType  string
	timeout   time.Duration
	validator *validation.Validator
	errors    *apperrors.ErrorHandler
	obs       *observability.Observability
	logger    logger.Logger
}

// NewJobRunner builds a runner for taskType. validator and obs may be nil.
func NewJobRunner(taskType string, timeout time.Duration, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *JobRunner {
	return &JobRunner{
		taskType:  taskType,
		timeout:   timeout,
		validator: validator,
		errors:    apperrors.NewErrorHandler(log),
		obs:       obs,
		logger:    log,
	}
}

func (r *JobRunner) Run(client worker.JobClient, job entities.Job, fn JobFunc) {
	start := time.Now()
	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	ctx, span := r.obs.StartSpan(ctx, r.taskType,
		attribute.Int64("job.key", job.Key),
		attribute.Int64("process.instance.key", job.ProcessInstanceKey),
	)

	output, err := r.execute(ctx, job, fn)
	if err == nil {
		err = CompleteJob(ctx, client, job, output)
	}
	observability.EndSpan(span, err)
	r.record(ctx, time.Since(start), err)

	if err != nil {
		r.errors.HandleJobError(ctx, client, job, err)
		return
	}
	r.logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.Key,
		"durationMs": time.Since(start).Milliseconds(),
	})
}

func (r *JobRunner) execute(ctx context.Context, job entities.Job, fn JobFunc) (interface{}, error) {
	if r.validator != nil {
		if err := r.validator.ValidateVariables(r.taskType, job.Variables); err != nil {
			return nil, err
		}
	}
	return fn(ctx, job)
}

func (r *JobRunner) record(ctx context.Context, duration time.Duration, err error) {
	status := "completed"
	code := ""
	if err != nil {
		status = "failed"
		code = string(apperrors.CodeOf(err))
	}
	metrics.RecordJob(r.taskType, duration, code)
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, duration, status)
}
