package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr string `env:"TRAILPLAN_LISTEN_ADDR" envDefault:":8080"`
	DBPath     string `env:"TRAILPLAN_DB_PATH"     envDefault:"/data/trailplan.db"`
	DataDir    string `env:"TRAILPLAN_DATA_DIR"    envDefault:"/data/fixtures"`
	Watch      bool   `env:"TRAILPLAN_WATCH"       envDefault:"true"`
	LogLevel   string `env:"TRAILPLAN_LOG_LEVEL"   envDefault:"info"`
	LogFormat  string `env:"TRAILPLAN_LOG_FORMAT"  envDefault:"json"`
	LogFile    string `env:"TRAILPLAN_LOG_FILE"`
	Timezone   string `env:"TRAILPLAN_TIMEZONE"    envDefault:"Asia/Tokyo"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Location resolves Timezone. Plan dates are compared against "today" in this
// zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
