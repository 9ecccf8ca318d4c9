package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Upstream struct {
		BaseURL   string `yaml:"base_url"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"upstream"`
	Refresh struct {
		TickerIntervalMs int `yaml:"ticker_interval_ms"`
		MarketIntervalMs int `yaml:"market_interval_ms"`
	} `yaml:"refresh"`
	ExcludedMarkets []string `yaml:"excluded_markets"`
	Logging         struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

// Load reads the YAML config and fills in defaults for anything omitted.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = "https://api.coindcx.com"
	}
	if c.Upstream.PublicURL == "" {
		c.Upstream.PublicURL = "https://public.coindcx.com"
	}
	if c.Refresh.TickerIntervalMs <= 0 {
		c.Refresh.TickerIntervalMs = 5000
	}
	if c.Refresh.MarketIntervalMs <= 0 {
		c.Refresh.MarketIntervalMs = 600000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
}

// TickerInterval is the cadence of the background ticker refresh.
func (c *Config) TickerInterval() time.Duration {
	return time.Duration(c.Refresh.TickerIntervalMs) * time.Millisecond
}

// MarketInterval is the cadence of the background metadata refresh.
func (c *Config) MarketInterval() time.Duration {
	return time.Duration(c.Refresh.MarketIntervalMs) * time.Millisecond
}
