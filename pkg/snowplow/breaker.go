package snowplow

import (
	"context"

	"promotedlogger/pkg/circuitbreaker"
	"promotedlogger/pkg/models"
)

// BreakerTransport adds circuit breaking around delivery calls. Session
// access stays local and is never gated.
type BreakerTransport struct {
	inner Transport
	cb    *circuitbreaker.Wrapper
}

func NewBreakerTransport(inner Transport, cfg circuitbreaker.Config) *BreakerTransport {
	return &BreakerTransport{
		inner: inner,
		cb:    circuitbreaker.NewWrapper(cfg),
	}
}

func (t *BreakerTransport) TrackSelfDescribingEvent(ctx context.Context, event models.SelfDescribingEvent) error {
	_, err := t.cb.ExecuteWithContext(ctx, func() (interface{}, error) {
		return nil, t.inner.TrackSelfDescribingEvent(ctx, event)
	})
	t.cb.RecordRequest(err == nil)
	return err
}

func (t *BreakerTransport) TrackLinkClick(ctx context.Context, targetURL, elementID string, tags []string, category, label string, contexts []models.SelfDescribingEvent) error {
	_, err := t.cb.ExecuteWithContext(ctx, func() (interface{}, error) {
		return nil, t.inner.TrackLinkClick(ctx, targetURL, elementID, tags, category, label, contexts)
	})
	t.cb.RecordRequest(err == nil)
	return err
}

func (t *BreakerTransport) WithSession(ctx context.Context, fn SessionCallback) error {
	return t.inner.WithSession(ctx, fn)
}
