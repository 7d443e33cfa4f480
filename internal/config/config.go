package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `envconfig:"PORT" default:"8080"`
	Environment  string        `envconfig:"ENV" default:"development"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`

	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// UpstreamConfig holds the interaction store API connection settings
type UpstreamConfig struct {
	BaseURL         string        `envconfig:"UPSTREAM_BASE_URL" default:"http://localhost:8000/api"`
	Timeout         time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	RetryMaxElapsed time.Duration `envconfig:"UPSTREAM_RETRY_MAX_ELAPSED" default:"15s"`
	FetchLimit      int           `envconfig:"UPSTREAM_FETCH_LIMIT" default:"500"`
}

// AnalyticsConfig holds aggregation engine tuning
type AnalyticsConfig struct {
	TrendWindow     int           `envconfig:"TREND_WINDOW" default:"14"`
	FallbackPeriods int           `envconfig:"TREND_FALLBACK_PERIODS" default:"4"`
	LeaderboardSize int           `envconfig:"LEADERBOARD_SIZE" default:"15"`
	SegmentKey      string        `envconfig:"SEGMENT_KEY" default:"intent"`
	SnapshotTTL     time.Duration `envconfig:"SNAPSHOT_TTL" default:"30s"`

	Quality QualityConfig
}

// QualityConfig holds the heuristic quality scorer weights so they can be
// tuned without touching the aggregation algorithm
type QualityConfig struct {
	SatisfactionPointValue float64 `envconfig:"QUALITY_SATISFACTION_POINT_VALUE" default:"20"`
	SuccessBonus           float64 `envconfig:"QUALITY_SUCCESS_BONUS" default:"10"`
	FastResponseBonus      float64 `envconfig:"QUALITY_FAST_RESPONSE_BONUS" default:"10"`
	FastResponseMaxMS      float64 `envconfig:"QUALITY_FAST_RESPONSE_MAX_MS" default:"2000"`
	HandoffPenalty         float64 `envconfig:"QUALITY_HANDOFF_PENALTY" default:"10"`
	DeescalationBonus      float64 `envconfig:"QUALITY_DEESCALATION_BONUS" default:"15"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CONVOPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
