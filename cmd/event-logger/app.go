package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sony/gobreaker"

	"promotedlogger/internal/config"
	"promotedlogger/internal/constants"
	"promotedlogger/internal/logger"
	"promotedlogger/pkg/circuitbreaker"
	"promotedlogger/pkg/metrics"
	"promotedlogger/pkg/models"
	"promotedlogger/pkg/promoted"
	"promotedlogger/pkg/snowplow"
	"promotedlogger/pkg/storage"
)

type App struct {
	cfg *config.Config
	log logger.Logger

	transport      snowplow.Transport
	kafkaTransport *snowplow.KafkaTransport
	store          storage.Store
	redisStore     *storage.RedisStore
	eventLogger    *promoted.EventLogger
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	return &App{cfg: cfg, log: log}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.initTransport(); err != nil {
		return fmt.Errorf("failed to initialize transport: %w", err)
	}

	if err := a.initStore(ctx); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	metrics.RegisterLoggerMetrics()
	if a.cfg.CircuitBreaker.Enabled {
		metrics.RegisterCircuitBreakerMetrics()
	}

	a.eventLogger = promoted.NewEventLogger(promoted.Config{
		PlatformName:        a.cfg.EventLogger.PlatformName,
		HandleLogError:      a.logErrorHandler(),
		Transport:           a.transport,
		Store:               a.store,
		UserSessionStoreKey: a.cfg.EventLogger.UserSessionStoreKey,
		UserHashStoreKey:    a.cfg.EventLogger.UserHashStoreKey,
		HashAlgorithm:       a.cfg.EventLogger.HashAlgorithm,
		Logger:              a.log,
	})

	return nil
}

func (a *App) initTransport() error {
	switch a.cfg.Transport.Type {
	case constants.TransportTypeHTTP:
		a.transport = snowplow.NewHTTPTransport(snowplow.HTTPConfig{
			Endpoint: a.cfg.Transport.HTTP.Endpoint,
			Timeout:  a.cfg.Transport.HTTP.TimeoutSeconds * time.Second,
		}, a.log)
	case constants.TransportTypeKafka:
		kt := snowplow.NewKafkaTransport(snowplow.KafkaConfig{
			Brokers: a.cfg.Transport.Kafka.Brokers,
			Topic:   a.cfg.Transport.Kafka.Topic,
		}, a.log)
		a.kafkaTransport = kt
		a.transport = kt
	default:
		return fmt.Errorf("unknown transport type: %s", a.cfg.Transport.Type)
	}

	if a.cfg.CircuitBreaker.Enabled {
		a.transport = snowplow.NewBreakerTransport(a.transport, a.breakerConfig())
		a.log.Infow("Circuit breaker enabled for transport")
	}

	return nil
}

func (a *App) breakerConfig() circuitbreaker.Config {
	cbCfg := circuitbreaker.DefaultConfig("transport")
	if a.cfg.CircuitBreaker.MaxRequests > 0 {
		cbCfg.MaxRequests = a.cfg.CircuitBreaker.MaxRequests
	}
	if a.cfg.CircuitBreaker.Interval > 0 {
		cbCfg.Interval = a.cfg.CircuitBreaker.Interval
	}
	if a.cfg.CircuitBreaker.Timeout > 0 {
		cbCfg.Timeout = a.cfg.CircuitBreaker.Timeout
	}
	if a.cfg.CircuitBreaker.FailureRatio > 0 {
		ratio := a.cfg.CircuitBreaker.FailureRatio
		minRequests := a.cfg.CircuitBreaker.MinRequests
		cbCfg.ReadyToTrip = func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && failureRatio >= ratio
		}
	}
	return cbCfg
}

func (a *App) initStore(ctx context.Context) error {
	switch a.cfg.Store.Type {
	case "", constants.StoreTypeMemory:
		a.store = storage.NewMemoryStore()
	case constants.StoreTypeRedis:
		rs, err := storage.NewRedisStore(ctx, storage.RedisConfig{
			Addr:     fmt.Sprintf("%s:%d", a.cfg.Store.Redis.Host, a.cfg.Store.Redis.Port),
			Password: a.cfg.Store.Redis.Password,
			DB:       a.cfg.Store.Redis.DB,
		})
		if err != nil {
			return err
		}
		a.redisStore = rs
		a.store = rs
	default:
		return fmt.Errorf("unknown store type: %s", a.cfg.Store.Type)
	}

	return nil
}

func (a *App) logErrorHandler() func(error) {
	if a.cfg.EventLogger.FailHard {
		return func(err error) {
			panic(err)
		}
	}
	return func(err error) {
		a.log.Errorw("Event logging failed", "error", err)
	}
}

type inputEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Run streams events from the input until EOF or cancellation. Malformed
// lines are skipped and logged rather than aborting the run.
func (a *App) Run(ctx context.Context, input io.Reader) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ev inputEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			a.log.Warnw("Skipping malformed input line",
				"line", lineNo,
				"error", err,
			)
			continue
		}

		if err := a.dispatch(ctx, ev); err != nil {
			a.log.Warnw("Skipping undispatchable event",
				"line", lineNo,
				"type", ev.Type,
				"error", err,
			)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	a.log.Infow("Input drained", "lines", lineNo)
	return nil
}

func (a *App) dispatch(ctx context.Context, ev inputEvent) error {
	switch ev.Type {
	case "user":
		var user models.User
		if err := json.Unmarshal(ev.Data, &user); err != nil {
			return err
		}
		a.eventLogger.LogUser(ctx, user)
	case "request":
		var req models.Request
		if err := json.Unmarshal(ev.Data, &req); err != nil {
			return err
		}
		req.RequestID = models.EventIDOrNew(req.RequestID)
		a.eventLogger.LogRequest(ctx, req)
	case "insertion":
		var ins models.Insertion
		if err := json.Unmarshal(ev.Data, &ins); err != nil {
			return err
		}
		ins.InsertionID = models.EventIDOrNew(ins.InsertionID)
		a.eventLogger.LogInsertion(ctx, ins)
	case "impression":
		var imp models.Impression
		if err := json.Unmarshal(ev.Data, &imp); err != nil {
			return err
		}
		imp.ImpressionID = models.EventIDOrNew(imp.ImpressionID)
		a.eventLogger.LogImpression(ctx, imp)
	case "click":
		var click models.Click
		if err := json.Unmarshal(ev.Data, &click); err != nil {
			return err
		}
		a.eventLogger.LogClick(ctx, click)
	default:
		return fmt.Errorf("unknown event type: %s", ev.Type)
	}

	return nil
}

func (a *App) Shutdown() {
	if a.kafkaTransport != nil {
		if err := a.kafkaTransport.Close(); err != nil {
			a.log.Warnw("Failed to close kafka transport", "error", err)
		}
	}
	if a.redisStore != nil {
		if err := a.redisStore.Close(); err != nil {
			a.log.Warnw("Failed to close redis store", "error", err)
		}
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
