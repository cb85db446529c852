package config

import (
	"fmt"
	"strings"

	"promotedlogger/internal/constants"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func ValidateStatic(cfg *Config) error {
	var errors []error

	if err := validateEventLogger(cfg.EventLogger); err != nil {
		errors = append(errors, err)
	}

	if err := validateTransport(cfg.Transport); err != nil {
		errors = append(errors, err)
	}

	if err := validateStore(cfg.Store); err != nil {
		errors = append(errors, err)
	}

	if err := validateSink(cfg.Sink); err != nil {
		errors = append(errors, err)
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}

func validateEventLogger(cfg EventLoggerConfig) error {
	if cfg.PlatformName == "" {
		return &ValidationError{
			Field:   "eventlogger.platform_name",
			Message: "platform name is required",
		}
	}

	if strings.ContainsAny(cfg.PlatformName, "/ ") {
		return &ValidationError{
			Field:   "eventlogger.platform_name",
			Message: "platform name must not contain slashes or spaces",
		}
	}

	validAlgorithms := map[string]bool{
		constants.HashAlgorithmSHA256: true,
		constants.HashAlgorithmMD5:    true,
	}
	if cfg.HashAlgorithm != "" && !validAlgorithms[strings.ToLower(cfg.HashAlgorithm)] {
		return &ValidationError{
			Field:   "eventlogger.hash_algorithm",
			Message: fmt.Sprintf("invalid hash algorithm: %s (valid: sha256, md5)", cfg.HashAlgorithm),
		}
	}

	return nil
}

func validateTransport(cfg TransportConfig) error {
	if cfg.Type == "" {
		return &ValidationError{
			Field:   "transport.type",
			Message: "transport type is required",
		}
	}

	switch cfg.Type {
	case constants.TransportTypeHTTP:
		return validateHTTPTransport(cfg.HTTP)
	case constants.TransportTypeKafka:
		return validateKafkaTransport(cfg.Kafka)
	default:
		return &ValidationError{
			Field:   "transport.type",
			Message: fmt.Sprintf("unknown transport type: %s (supported: http, kafka)", cfg.Type),
		}
	}
}

func validateHTTPTransport(cfg HTTPTransportConfig) error {
	if cfg.Endpoint == "" {
		return &ValidationError{
			Field:   "transport.http.endpoint",
			Message: "collector endpoint is required",
		}
	}

	if !strings.HasPrefix(cfg.Endpoint, "http://") && !strings.HasPrefix(cfg.Endpoint, "https://") {
		return &ValidationError{
			Field:   "transport.http.endpoint",
			Message: "collector endpoint must start with http:// or https://",
		}
	}

	return nil
}

func validateKafkaTransport(cfg KafkaTransportConfig) error {
	if len(cfg.Brokers) == 0 {
		return &ValidationError{
			Field:   "transport.kafka.brokers",
			Message: "at least one Kafka broker is required",
		}
	}

	for i, broker := range cfg.Brokers {
		if broker == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("transport.kafka.brokers[%d]", i),
				Message: "broker address cannot be empty",
			}
		}
	}

	return nil
}

func validateStore(cfg StoreConfig) error {
	switch cfg.Type {
	case "", constants.StoreTypeMemory:
		return nil
	case constants.StoreTypeRedis:
		return validateRedis(cfg.Redis)
	default:
		return &ValidationError{
			Field:   "store.type",
			Message: fmt.Sprintf("unknown store type: %s (supported: memory, redis)", cfg.Type),
		}
	}
}

func validateRedis(cfg RedisConfig) error {
	if cfg.Host == "" {
		return &ValidationError{
			Field:   "store.redis.host",
			Message: "Redis host is required",
		}
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "store.redis.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	return nil
}

func validateSink(cfg SinkConfig) error {
	if cfg.Port != 0 && (cfg.Port < 1 || cfg.Port > 65535) {
		return &ValidationError{
			Field:   "sink.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	if cfg.RateLimit.Enabled && cfg.RateLimit.RPS <= 0 {
		return &ValidationError{
			Field:   "sink.rate_limit.rps",
			Message: "rps must be positive when rate limiting is enabled",
		}
	}

	return nil
}
