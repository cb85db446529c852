package constants

import "time"

const (
	DefaultUserSessionStoreKey = "p-us"
	DefaultUserHashStoreKey    = "p-uh"
)

const (
	SchemaVendor       = "ai.promoted"
	SchemaFormat       = "jsonschema"
	SchemaVersion      = "1-0-0"
	ClickContextSchema = "iglu:ai.promoted/impression_cx/jsonschema/1-0-0"
)

const (
	DefaultHTTPTimeout = 10 * time.Second
	KafkaBatchTimeout  = 10 * time.Millisecond
	KafkaWriteTimeout  = 10 * time.Second
)

const (
	HashAlgorithmSHA256 = "sha256"
	HashAlgorithmMD5    = "md5"
)

const (
	TransportTypeHTTP  = "http"
	TransportTypeKafka = "kafka"
)

const (
	StoreTypeMemory = "memory"
	StoreTypeRedis  = "redis"
)

const (
	DefaultKafkaTopic = "promoted_events"
)

const (
	ShutdownTimeout = 5 * time.Second
)
