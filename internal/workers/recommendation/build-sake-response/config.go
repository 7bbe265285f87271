// internal/workers/recommendation/build-sake-response/config.go
package buildsakeresponse

import (
	"time"

	"sake-reco/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// ValidateOutput checks the payload against the registry output schema.
	ValidateOutput bool
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:        config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		ValidateOutput: true,
	}
}
