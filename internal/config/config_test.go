package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "fieldecon.case-totals", cfg.Kafka.Topic)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, uint64(3), cfg.Prices.Retries)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9090"
redis:
  enabled: true
  addr: "cache:6379"
  ttl: 1m
kafka:
  brokers: ["k1:9092", "k2:9092"]
log:
  level: debug
`), 0o600))

	t.Setenv("FIELDECON_LOG_LEVEL", "warn")
	t.Setenv("FIELDECON_POSTGRES_DSN", "postgres://u:p@db:5432/econ")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "postgres://u:p@db:5432/econ", cfg.Postgres.DSN)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Kafka.Enabled = true
	cfg.Kafka.Topic = ""
	cfg.Postgres.DSN = ""

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres.dsn")
	assert.Contains(t, err.Error(), "kafka.brokers")
}
