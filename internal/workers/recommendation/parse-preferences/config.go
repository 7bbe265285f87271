// internal/workers/recommendation/parse-preferences/config.go
package parsepreferences

import (
	"time"

	"sake-reco/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
	}
}
