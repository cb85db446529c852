package snowplow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"promotedlogger/internal/constants"
	"promotedlogger/internal/logger"
	"promotedlogger/pkg/models"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KafkaTransport publishes event envelopes to a topic, for deployments that
// forward events into a streaming pipeline instead of a collector endpoint.
type KafkaTransport struct {
	writer  *kafka.Writer
	topic   string
	session *ProcessSession
	logger  logger.Logger
}

func NewKafkaTransport(cfg KafkaConfig, log logger.Logger) *KafkaTransport {
	topic := cfg.Topic
	if topic == "" {
		topic = constants.DefaultKafkaTopic
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: constants.KafkaBatchTimeout,
		WriteTimeout: constants.KafkaWriteTimeout,
		Async:        false,
	}

	return &KafkaTransport{
		writer:  w,
		topic:   topic,
		session: NewProcessSession(),
		logger:  log,
	}
}

func (t *KafkaTransport) TrackSelfDescribingEvent(ctx context.Context, event models.SelfDescribingEvent) error {
	return t.publish(ctx, Envelope{
		EventID: uuid.NewString(),
		Kind:    EnvelopeKindSelfDescribing,
		SentAt:  time.Now(),
		Event:   &event,
	})
}

func (t *KafkaTransport) TrackLinkClick(ctx context.Context, targetURL, elementID string, tags []string, category, label string, contexts []models.SelfDescribingEvent) error {
	return t.publish(ctx, Envelope{
		EventID: uuid.NewString(),
		Kind:    EnvelopeKindLinkClick,
		SentAt:  time.Now(),
		Click: &LinkClick{
			TargetURL: targetURL,
			ElementID: elementID,
			Tags:      tags,
			Category:  category,
			Label:     label,
			Contexts:  contexts,
		},
	})
}

func (t *KafkaTransport) WithSession(ctx context.Context, fn SessionCallback) error {
	return fn(ctx, t.session)
}

func (t *KafkaTransport) Session() *ProcessSession {
	return t.session
}

func (t *KafkaTransport) Close() error {
	return t.writer.Close()
}

func (t *KafkaTransport) publish(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	err = t.writer.WriteMessages(ctx,
		kafka.Message{
			Topic: t.topic,
			Key:   []byte(env.EventID),
			Value: body,
			Time:  time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to write kafka message: %w", err)
	}

	t.logger.Debugw("Envelope published",
		"eid", env.EventID,
		"kind", env.Kind,
		"topic", t.topic,
	)
	return nil
}
