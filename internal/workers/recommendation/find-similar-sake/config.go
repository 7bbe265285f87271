// internal/workers/recommendation/find-similar-sake/config.go
package findsimilarsake

import (
	"time"

	"sake-reco/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	DefaultLimit int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:      config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		DefaultLimit: cfg.Matching.SimilarLimit,
	}
}
