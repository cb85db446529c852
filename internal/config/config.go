package config

import "time"

type Config struct {
	Logging        LoggingConfig
	EventLogger    EventLoggerConfig
	Transport      TransportConfig
	Store          StoreConfig
	CircuitBreaker CircuitBreakerConfig
	Sink           SinkConfig
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type EventLoggerConfig struct {
	PlatformName        string `mapstructure:"platform_name"`
	UserSessionStoreKey string `mapstructure:"user_session_store_key"`
	UserHashStoreKey    string `mapstructure:"user_hash_store_key"`
	HashAlgorithm       string `mapstructure:"hash_algorithm"`
	// FailHard makes the CLI's error handler panic instead of logging, so
	// broken wiring is loud during development.
	FailHard bool `mapstructure:"fail_hard"`
}

type TransportConfig struct {
	Type  string               `mapstructure:"type"`
	HTTP  HTTPTransportConfig  `mapstructure:"http"`
	Kafka KafkaTransportConfig `mapstructure:"kafka"`
}

type HTTPTransportConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	TimeoutSeconds time.Duration `mapstructure:"timeout_seconds"`
}

type KafkaTransportConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type StoreConfig struct {
	Type  string      `mapstructure:"type"`
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CircuitBreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
	MinRequests  uint32        `mapstructure:"min_requests"`
}

type SinkConfig struct {
	Port      int             `mapstructure:"port"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	RPS             float64 `mapstructure:"rps"`
	Burst           int     `mapstructure:"burst"`
	CleanupInterval int     `mapstructure:"cleanup_interval"`
	MaxAge          int     `mapstructure:"max_age"`
}

func Load(configFile string) (*Config, error) {
	return LoadConfig(configFile)
}
