package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validHTTPConfig = `
logging:
  level: debug
eventlogger:
  platform_name: marketplace
  hash_algorithm: sha256
transport:
  type: http
  http:
    endpoint: http://localhost:8099/events
    timeout_seconds: 5
store:
  type: memory
`

func TestLoadConfig_HTTP(t *testing.T) {
	cfg, err := Load(writeConfig(t, validHTTPConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "marketplace", cfg.EventLogger.PlatformName)
	assert.Equal(t, "sha256", cfg.EventLogger.HashAlgorithm)
	assert.Equal(t, "http", cfg.Transport.Type)
	assert.Equal(t, "http://localhost:8099/events", cfg.Transport.HTTP.Endpoint)
	assert.Equal(t, "memory", cfg.Store.Type)
}

func TestLoadConfig_Kafka(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
eventlogger:
  platform_name: marketplace
transport:
  type: kafka
  kafka:
    brokers:
      - localhost:9092
      - localhost:9093
    topic: promoted_events
store:
  type: redis
  redis:
    host: localhost
    port: 6379
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.Transport.Kafka.Brokers)
	assert.Equal(t, "promoted_events", cfg.Transport.Kafka.Topic)
	assert.Equal(t, "redis", cfg.Store.Type)
	assert.Equal(t, 6379, cfg.Store.Redis.Port)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name: "missing platform name",
			content: `
transport:
  type: http
  http:
    endpoint: http://localhost:8099/events
`,
			wantMsg: "platform name is required",
		},
		{
			name: "platform name with slash",
			content: `
eventlogger:
  platform_name: bad/name
transport:
  type: http
  http:
    endpoint: http://localhost:8099/events
`,
			wantMsg: "slashes or spaces",
		},
		{
			name: "unknown transport type",
			content: `
eventlogger:
  platform_name: marketplace
transport:
  type: carrier-pigeon
`,
			wantMsg: "unknown transport type",
		},
		{
			name: "kafka without brokers",
			content: `
eventlogger:
  platform_name: marketplace
transport:
  type: kafka
`,
			wantMsg: "at least one Kafka broker",
		},
		{
			name: "endpoint without scheme",
			content: `
eventlogger:
  platform_name: marketplace
transport:
  type: http
  http:
    endpoint: localhost:8099
`,
			wantMsg: "http:// or https://",
		},
		{
			name: "invalid hash algorithm",
			content: `
eventlogger:
  platform_name: marketplace
  hash_algorithm: crc32
transport:
  type: http
  http:
    endpoint: http://localhost:8099/events
`,
			wantMsg: "invalid hash algorithm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_KafkaBrokersEnvOverride(t *testing.T) {
	t.Setenv("TRANSPORT_KAFKA_BROKERS", "broker-a:9092, broker-b:9092")

	cfg, err := Load(writeConfig(t, `
eventlogger:
  platform_name: marketplace
transport:
  type: kafka
  kafka:
    brokers:
      - localhost:9092
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.Transport.Kafka.Brokers)
}
