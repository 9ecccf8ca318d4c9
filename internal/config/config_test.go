package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
upstream:
  base_url: "http://localhost:9000"
  public_url: "http://localhost:9001"
refresh:
  ticker_interval_ms: 2000
  market_interval_ms: 60000
excluded_markets:
  - BADINR
logging:
  level: debug
server:
  port: 9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.Upstream.BaseURL)
	assert.Equal(t, "http://localhost:9001", cfg.Upstream.PublicURL)
	assert.Equal(t, 2*time.Second, cfg.TickerInterval())
	assert.Equal(t, time.Minute, cfg.MarketInterval())
	assert.Equal(t, []string{"BADINR"}, cfg.ExcludedMarkets)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `server: {}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.coindcx.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "https://public.coindcx.com", cfg.Upstream.PublicURL)
	assert.Equal(t, 5*time.Second, cfg.TickerInterval())
	assert.Equal(t, 10*time.Minute, cfg.MarketInterval())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "server: [not: a: mapping")
	_, err := Load(path)
	assert.Error(t, err)
}
