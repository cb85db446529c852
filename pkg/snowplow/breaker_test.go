package snowplow

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promotedlogger/pkg/circuitbreaker"
	"promotedlogger/pkg/models"
)

type stubTransport struct {
	trackCalls int
	clickCalls int
	err        error
	session    *ProcessSession
}

func (s *stubTransport) TrackSelfDescribingEvent(ctx context.Context, event models.SelfDescribingEvent) error {
	s.trackCalls++
	return s.err
}

func (s *stubTransport) TrackLinkClick(ctx context.Context, targetURL, elementID string, tags []string, category, label string, contexts []models.SelfDescribingEvent) error {
	s.clickCalls++
	return s.err
}

func (s *stubTransport) WithSession(ctx context.Context, fn SessionCallback) error {
	if s.session == nil {
		s.session = NewProcessSession()
	}
	return fn(ctx, s.session)
}

func tripFastConfig(name string) circuitbreaker.Config {
	cfg := circuitbreaker.DefaultConfig(name)
	cfg.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 2
	}
	return cfg
}

func TestBreakerTransport_PassesThrough(t *testing.T) {
	ctx := context.Background()
	inner := &stubTransport{}
	transport := NewBreakerTransport(inner, tripFastConfig("pass"))

	require.NoError(t, transport.TrackSelfDescribingEvent(ctx, models.SelfDescribingEvent{}))
	require.NoError(t, transport.TrackLinkClick(ctx, "target-url", "element-id", []string{}, "", "", nil))

	assert.Equal(t, 1, inner.trackCalls)
	assert.Equal(t, 1, inner.clickCalls)
}

func TestBreakerTransport_ShortCircuitsWhenOpen(t *testing.T) {
	ctx := context.Background()
	inner := &stubTransport{err: errors.New("collector down")}
	transport := NewBreakerTransport(inner, tripFastConfig("open"))

	_ = transport.TrackSelfDescribingEvent(ctx, models.SelfDescribingEvent{})
	_ = transport.TrackSelfDescribingEvent(ctx, models.SelfDescribingEvent{})
	require.Equal(t, 2, inner.trackCalls)

	err := transport.TrackSelfDescribingEvent(ctx, models.SelfDescribingEvent{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, inner.trackCalls)
}

func TestBreakerTransport_SessionNotGated(t *testing.T) {
	ctx := context.Background()
	inner := &stubTransport{err: errors.New("collector down")}
	transport := NewBreakerTransport(inner, tripFastConfig("session"))

	_ = transport.TrackSelfDescribingEvent(ctx, models.SelfDescribingEvent{})
	_ = transport.TrackSelfDescribingEvent(ctx, models.SelfDescribingEvent{})

	called := false
	err := transport.WithSession(ctx, func(ctx context.Context, session SessionContext) error {
		called = true
		_, err := session.DomainUserInfo()
		return err
	})
	require.NoError(t, err)
	assert.True(t, called)
}
