// internal/workers/recommendation/match-sake/config.go
package matchsake

import (
	"time"

	"sake-reco/internal/common/config"
)

type Config struct {
	Timeout            time.Duration
	QuestionnaireLimit int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:            config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		QuestionnaireLimit: cfg.Matching.QuestionnaireLimit,
	}
}
