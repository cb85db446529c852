package snowplow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"promotedlogger/internal/constants"
	"promotedlogger/internal/logger"
	"promotedlogger/pkg/models"
)

type HTTPConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// HTTPTransport posts event envelopes to a collector endpoint. Failed
// deliveries are returned as errors and never retried.
type HTTPTransport struct {
	endpoint string
	client   *http.Client
	session  *ProcessSession
	logger   logger.Logger
}

func NewHTTPTransport(cfg HTTPConfig, log logger.Logger) *HTTPTransport {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	return &HTTPTransport{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
		session:  NewProcessSession(),
		logger:   log,
	}
}

func (t *HTTPTransport) TrackSelfDescribingEvent(ctx context.Context, event models.SelfDescribingEvent) error {
	return t.send(ctx, Envelope{
		EventID: uuid.NewString(),
		Kind:    EnvelopeKindSelfDescribing,
		SentAt:  time.Now(),
		Event:   &event,
	})
}

func (t *HTTPTransport) TrackLinkClick(ctx context.Context, targetURL, elementID string, tags []string, category, label string, contexts []models.SelfDescribingEvent) error {
	return t.send(ctx, Envelope{
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

func (t *HTTPTransport) WithSession(ctx context.Context, fn SessionCallback) error {
	return fn(ctx, t.session)
}

// Session exposes the transport-owned session so callers can force rollover.
func (t *HTTPTransport) Session() *ProcessSession {
	return t.session
}

func (t *HTTPTransport) send(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build collector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("collector request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}

	t.logger.Debugw("Envelope delivered",
		"eid", env.EventID,
		"kind", env.Kind,
	)
	return nil
}
