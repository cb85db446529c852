package integration

import (
	"context"

	"promotedlogger/internal/logger"
	"promotedlogger/pkg/models"
	"promotedlogger/pkg/snowplow"
)

const messageWaitTimeout = 30

func createTestLogger() logger.Logger {
	return logger.NopLogger()
}

// captureTransport records tracked events in memory so integration tests can
// pair a real store with an observable delivery path.
type captureTransport struct {
	events  []models.SelfDescribingEvent
	session *snowplow.ProcessSession
}

func newCaptureTransport() *captureTransport {
	return &captureTransport{session: snowplow.NewProcessSession()}
}

func (c *captureTransport) TrackSelfDescribingEvent(ctx context.Context, event models.SelfDescribingEvent) error {
	c.events = append(c.events, event)
	return nil
}

func (c *captureTransport) TrackLinkClick(ctx context.Context, targetURL, elementID string, tags []string, category, label string, contexts []models.SelfDescribingEvent) error {
	return nil
}

func (c *captureTransport) WithSession(ctx context.Context, fn snowplow.SessionCallback) error {
	return fn(ctx, c.session)
}
