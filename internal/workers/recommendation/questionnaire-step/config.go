// internal/workers/recommendation/questionnaire-step/config.go
package questionnairestep

import (
	"time"

	"sake-reco/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	ResultLimit int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:     config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		ResultLimit: cfg.Matching.QuestionnaireLimit,
	}
}
