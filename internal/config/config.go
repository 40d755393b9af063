package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	DBHost string `toml:"db_host"`
	DBPort string `toml:"db_port"`
	DBName string `toml:"db_name"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort int    `toml:"redis_port"`
	// plan policy defaults
	MaxDailyHours          float64 `toml:"max_daily_hours"`
	GracePeriodDays        int     `toml:"grace_period_days"`
	WeeklyResetThreshold   int     `toml:"weekly_reset_threshold"`
	RedistributionCapHours float64 `toml:"redistribution_cap_hours"`
	PauseThreshold         int     `toml:"pause_threshold"`
	EditUnlockThreshold    int     `toml:"edit_unlock_threshold"`
	// missed-session sweep
	SweepIntervalMinutes int `toml:"sweep_interval_minutes"`
	SweepWorkers         int `toml:"sweep_workers"`
	// rate limiting
	RateLimitPerMinute int  `toml:"rate_limit_per_minute"`
	TracingEnabled     bool `toml:"tracing_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section missing for env: %s", env)
	}

	cfg.Environment = env
	return cfg, nil
}
