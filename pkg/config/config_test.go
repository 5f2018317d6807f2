package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
environment: test
server:
  port: 8080
fred:
  base_url: https://api.stlouisfed.org/fred/series/observations
  api_key: from-file
ntfy:
  base_url: https://ntfy.sh
  topic: file-topic
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.FRED.APIKey)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing environment", `
server:
  port: 8080
fred:
  base_url: https://example.com
ntfy:
  base_url: https://ntfy.sh
`},
		{"missing fred base url", `
environment: test
server:
  port: 8080
ntfy:
  base_url: https://ntfy.sh
`},
		{"zero port", `
environment: test
fred:
  base_url: https://example.com
ntfy:
  base_url: https://ntfy.sh
`},
		{"brokers without topic", minimalYAML + `
kafka:
  brokers: ["localhost:9092"]
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("FRED_API_KEY", "from-env")
	t.Setenv("NTFY_TOPIC", "env-topic")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("KAFKA_BROKERS", "b1:9092,b2:9092")
	t.Setenv("KAFKA_TOPIC", "macro.updates")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("PORT", "9999")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.FRED.APIKey)
	assert.Equal(t, "env-topic", cfg.Ntfy.Topic)
	assert.Equal(t, "postgres://env/db", cfg.Postgres.URL)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoadWithEnvFileValuesSurvive(t *testing.T) {
	t.Setenv("FRED_API_KEY", "")
	t.Setenv("NTFY_TOPIC", "")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.FRED.APIKey)
	assert.Equal(t, "file-topic", cfg.Ntfy.Topic)
}
