package snowplow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promotedlogger/internal/logger"
	"promotedlogger/pkg/models"
)

func newCaptureServer(t *testing.T, status int) (*httptest.Server, *[]Envelope) {
	t.Helper()

	var received []Envelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var env Envelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
		received = append(received, env)
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server, &received
}

func TestHTTPTransport_TrackSelfDescribingEvent(t *testing.T) {
	server, received := newCaptureServer(t, http.StatusOK)
	transport := NewHTTPTransport(HTTPConfig{Endpoint: server.URL}, logger.NopLogger())

	event := models.SelfDescribingEvent{
		Schema: "iglu:ai.promoted.test/request/jsonschema/1-0-0",
		Data:   map[string]interface{}{"requestId": "req-1"},
	}
	require.NoError(t, transport.TrackSelfDescribingEvent(context.Background(), event))

	require.Len(t, *received, 1)
	env := (*received)[0]
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, EnvelopeKindSelfDescribing, env.Kind)
	require.NotNil(t, env.Event)
	assert.Equal(t, event.Schema, env.Event.Schema)
	assert.Nil(t, env.Click)
}

func TestHTTPTransport_TrackLinkClick(t *testing.T) {
	server, received := newCaptureServer(t, http.StatusOK)
	transport := NewHTTPTransport(HTTPConfig{Endpoint: server.URL}, logger.NopLogger())

	contexts := []models.SelfDescribingEvent{{
		Schema: "iglu:ai.promoted/impression_cx/jsonschema/1-0-0",
		Data:   models.ClickContext{ImpressionID: "imp-1"},
	}}
	err := transport.TrackLinkClick(context.Background(), "target-url", "element-id", []string{}, "", "", contexts)
	require.NoError(t, err)

	require.Len(t, *received, 1)
	env := (*received)[0]
	assert.Equal(t, EnvelopeKindLinkClick, env.Kind)
	require.NotNil(t, env.Click)
	assert.Equal(t, "target-url", env.Click.TargetURL)
	assert.Equal(t, "element-id", env.Click.ElementID)
	require.Len(t, env.Click.Contexts, 1)
	assert.Equal(t, "iglu:ai.promoted/impression_cx/jsonschema/1-0-0", env.Click.Contexts[0].Schema)
	assert.Nil(t, env.Event)
}

func TestHTTPTransport_CollectorFailure(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusInternalServerError)
	transport := NewHTTPTransport(HTTPConfig{Endpoint: server.URL}, logger.NopLogger())

	err := transport.TrackSelfDescribingEvent(context.Background(), models.SelfDescribingEvent{
		Schema: "iglu:ai.promoted.test/request/jsonschema/1-0-0",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPTransport_Unreachable(t *testing.T) {
	transport := NewHTTPTransport(HTTPConfig{Endpoint: "http://127.0.0.1:1/events"}, logger.NopLogger())

	err := transport.TrackSelfDescribingEvent(context.Background(), models.SelfDescribingEvent{
		Schema: "iglu:ai.promoted.test/request/jsonschema/1-0-0",
	})
	assert.Error(t, err)
}

func TestHTTPTransport_WithSession(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusOK)
	transport := NewHTTPTransport(HTTPConfig{Endpoint: server.URL}, logger.NopLogger())

	var got DomainUserInfo
	err := transport.WithSession(context.Background(), func(ctx context.Context, session SessionContext) error {
		info, err := session.DomainUserInfo()
		if err != nil {
			return err
		}
		got = info
		return nil
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.DomainUserID)
	assert.NotEmpty(t, got.SessionID)
	assert.NotZero(t, got.Now)
}
