// internal/common/camunda/worker.go
package camunda

import (
	"sake-reco/internal/common/config"
	"sake-reco/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Registration binds a task type to its job handler.
type Registration struct {
	TaskType string
	Handler  worker.JobHandler
}

// StartWorkers opens a job worker for every enabled registration. Callers
// close the returned workers on shutdown.
func StartWorkers(client zbc.Client, cfg *config.Config, regs []Registration, log logger.Logger) []worker.JobWorker {
	var started []worker.JobWorker
	for _, r := range regs {
		if !config.IsWorkerEnabled(cfg, r.TaskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": r.TaskType})
			continue
		}
		wcfg := config.GetWorkerConfig(cfg, r.TaskType)
		started = append(started, StartWorker(client, r.TaskType, wcfg, r.Handler, log))
	}
	return started
}

func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})
	return jw
}
