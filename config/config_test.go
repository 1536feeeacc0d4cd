package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
granularity: 10
metrics:
  prometheus_enabled: true
  prometheus_port: ":9100"
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Granularity)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, ":9100", cfg.Metrics.PrometheusPort)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadDefaults(t *testing.T) {
	path := writeTemp(t, "config.json", `{}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Granularity)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusPort)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeTemp(t, "config.yaml", "granularity: 10\n")
	t.Setenv("PODIUM_GRANULARITY", "15")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Granularity)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "config.toml", "granularity = 10")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadBadLogLevel(t *testing.T) {
	path := writeTemp(t, "config.yaml", "logging:\n  level: loud\n")
	_, err := Load(path)
	require.Error(t, err)
}
