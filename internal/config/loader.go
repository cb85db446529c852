package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func LoadConfig(configFile string) (*Config, error) {
	viper.Reset()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(configFile)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := ValidateStatic(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func bindEnvVariables() {
	viper.BindEnv("eventlogger.platform_name", "EVENTLOGGER_PLATFORM_NAME")
	viper.BindEnv("eventlogger.user_session_store_key", "EVENTLOGGER_USER_SESSION_STORE_KEY")
	viper.BindEnv("eventlogger.user_hash_store_key", "EVENTLOGGER_USER_HASH_STORE_KEY")
	viper.BindEnv("eventlogger.hash_algorithm", "EVENTLOGGER_HASH_ALGORITHM")

	viper.BindEnv("transport.type", "TRANSPORT_TYPE")
	viper.BindEnv("transport.http.endpoint", "TRANSPORT_HTTP_ENDPOINT")
	viper.BindEnv("transport.kafka.brokers", "TRANSPORT_KAFKA_BROKERS")
	viper.BindEnv("transport.kafka.topic", "TRANSPORT_KAFKA_TOPIC")

	viper.BindEnv("store.type", "STORE_TYPE")
	viper.BindEnv("store.redis.host", "STORE_REDIS_HOST")
	viper.BindEnv("store.redis.port", "STORE_REDIS_PORT")
	viper.BindEnv("store.redis.password", "STORE_REDIS_PASSWORD")
	viper.BindEnv("store.redis.db", "STORE_REDIS_DB")

	viper.BindEnv("sink.port", "SINK_PORT")

	viper.BindEnv("logging.level", "LOGGING_LEVEL")
}

func applyEnvOverrides(cfg *Config) error {
	if brokersEnv := viper.GetString("TRANSPORT_KAFKA_BROKERS"); brokersEnv != "" {
		brokers := strings.Split(brokersEnv, ",")
		for i := range brokers {
			brokers[i] = strings.TrimSpace(brokers[i])
		}
		if len(brokers) > 0 && brokers[0] != "" {
			cfg.Transport.Kafka.Brokers = brokers
		}
	}

	return nil
}
