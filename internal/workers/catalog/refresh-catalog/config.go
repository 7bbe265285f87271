// internal/workers/catalog/refresh-catalog/config.go
package refreshcatalog

import (
	"time"

	"sake-reco/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

// LoadConfig gives the job the catalog fetch timeout plus headroom for the
// snapshot cache write.
func LoadConfig(cfg *config.Config) *Config {
	timeout := config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout)
	if min := cfg.Catalog.TimeoutDuration() + 5*time.Second; timeout < min {
		timeout = min
	}
	return &Config{Timeout: timeout}
}
