// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig               `mapstructure:"app"`
	Camunda      CamundaConfig           `mapstructure:"camunda"`
	Database     DatabaseConfig          `mapstructure:"database"`
	Backend      BackendConfig           `mapstructure:"backend"`
	Availability AvailabilityConfig      `mapstructure:"availability"`
	Matching     MatchingConfig          `mapstructure:"matching"`
	Workers      map[string]WorkerConfig `mapstructure:"workers" validate:"dive"`
	Logging      LoggingConfig           `mapstructure:"logging"`
	Tracing      TracingConfig           `mapstructure:"tracing"`
	Server       ServerConfig            `mapstructure:"server"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`

	// RegistryPath overrides the activity registry compiled into the binary.
	RegistryPath string `mapstructure:"registry_path"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address" validate:"required"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active" validate:"min=1"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"min=1,max=65535"`
	Database       string `mapstructure:"database" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"`
	Index     string   `mapstructure:"index"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

// BackendConfig points at the booking backend that serves raw availability.
// BaseURLs are tried in order.
type BackendConfig struct {
	BaseURLs []string `mapstructure:"base_urls"`
	Timeout  int      `mapstructure:"timeout"` // milliseconds
}

// AvailabilityConfig selects the raw window source of generate-slot-grid.
type AvailabilityConfig struct {
	Source    string `mapstructure:"source" validate:"oneof=http postgres rules"`
	RulesPath string `mapstructure:"rules_path" validate:"required_if=Source rules"`
}

// MatchingConfig holds settings for the search, scoring and ranking workers.
type MatchingConfig struct {
	ProfileCacheTTL int `mapstructure:"profile_cache_ttl"` // seconds
	SearchSize      int `mapstructure:"search_size" validate:"min=1,max=500"`
	MaxRanked       int `mapstructure:"max_ranked" validate:"min=0"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active" validate:"min=1"`
	Timeout       int  `mapstructure:"timeout" validate:"min=1"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries" validate:"min=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type TracingConfig struct {
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

type ServerConfig struct {
	MetricsPort int `mapstructure:"metrics_port" validate:"min=1,max=65535"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
