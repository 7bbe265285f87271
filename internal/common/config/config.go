// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Catalog  CatalogConfig           `mapstructure:"catalog"`
	Database DatabaseConfig          `mapstructure:"database"`
	Matching MatchingConfig          `mapstructure:"matching"`
	Server   ServerConfig            `mapstructure:"server"`
	Sessions SessionsConfig          `mapstructure:"sessions"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	Logging  LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	// Empty disables the Zeebe workers; the HTTP API still runs.
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// CatalogConfig configures the remote catalog endpoint and its snapshot cache.
type CatalogConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	Timeout       int    `mapstructure:"timeout"`   // milliseconds
	CacheTTL      int    `mapstructure:"cache_ttl"` // seconds, 0 disables the snapshot cache
	WarmFromCache bool   `mapstructure:"warm_from_cache"`
	LoadOnStart   bool   `mapstructure:"load_on_start"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MatchingConfig struct {
	QuestionnaireLimit int `mapstructure:"questionnaire_limit"`
	SimilarLimit       int `mapstructure:"similar_limit"`
}

type ServerConfig struct {
	Address          string `mapstructure:"address"`
	RefreshRateLimit int    `mapstructure:"refresh_rate_limit"` // requests per minute per client
}

type SessionsConfig struct {
	IdleTTL int `mapstructure:"idle_ttl"` // seconds
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func (c CatalogConfig) TimeoutDuration() time.Duration {
	return GetDuration(c.Timeout)
}

func (c CatalogConfig) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

func (s SessionsConfig) IdleTTLDuration() time.Duration {
	return time.Duration(s.IdleTTL) * time.Second
}
