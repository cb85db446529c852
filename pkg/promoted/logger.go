// Package promoted shapes application events (user, request, insertion,
// impression, click) into schema-tagged payloads and forwards them through an
// injected tracking transport. The only stateful behavior is the user event
// deduplication backed by a key-value store; everything else is a synchronous
// mapping from input record to transport call.
package promoted

import (
	"context"
	"time"

	"promotedlogger/internal/constants"
	"promotedlogger/internal/logger"
	pkgerrors "promotedlogger/pkg/errors"
	"promotedlogger/pkg/metrics"
	"promotedlogger/pkg/models"
	"promotedlogger/pkg/snowplow"
	"promotedlogger/pkg/storage"
)

// Config configures an EventLogger. Construction performs no I/O and never
// fails; missing collaborators surface as errors on first use instead.
type Config struct {
	// PlatformName namespaces the structured-event schema URIs.
	PlatformName string

	// HandleLogError receives every error caught by an operation. The
	// handler may panic to force failures through to the operation's
	// caller; the logger does not recover. A nil handler swallows errors.
	HandleLogError func(error)

	// Transport delivers shaped events. When nil, the package-level
	// snowplow.DefaultTransport binding is consulted once at construction.
	Transport snowplow.Transport

	// Store persists the user session marker. When nil, the package-level
	// storage.DefaultStore binding is consulted once at construction.
	Store storage.Store

	// UserSessionStoreKey and UserHashStoreKey override the persistence
	// keys for the session marker pair.
	UserSessionStoreKey string
	UserHashStoreKey    string

	// HashAlgorithm selects the user content hash ("sha256" or "md5").
	HashAlgorithm string

	// Logger receives debug output. Nop when nil; the event logger never
	// writes to a console on its own.
	Logger logger.Logger
}

// EventLogger is the event shaper. One instance per platform; all fields are
// fixed at construction and input records are never retained or mutated.
type EventLogger struct {
	platformName string
	handleErr    func(error)
	transport    snowplow.Transport
	store        storage.Store
	sessionKey   string
	hashKey      string
	hasher       *Hasher
	schemas      *schemaSet
	logger       logger.Logger
}

func NewEventLogger(cfg Config) *EventLogger {
	handleErr := cfg.HandleLogError
	if handleErr == nil {
		handleErr = func(error) {}
	}

	transport := cfg.Transport
	if transport == nil {
		transport = snowplow.DefaultTransport
	}

	store := cfg.Store
	if store == nil {
		store = storage.DefaultStore
	}

	sessionKey := cfg.UserSessionStoreKey
	if sessionKey == "" {
		sessionKey = constants.DefaultUserSessionStoreKey
	}

	hashKey := cfg.UserHashStoreKey
	if hashKey == "" {
		hashKey = constants.DefaultUserHashStoreKey
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NopLogger()
	}

	return &EventLogger{
		platformName: cfg.PlatformName,
		handleErr:    handleErr,
		transport:    transport,
		store:        store,
		sessionKey:   sessionKey,
		hashKey:      hashKey,
		hasher:       NewHasher(cfg.HashAlgorithm),
		schemas:      newSchemaSet(cfg.PlatformName),
		logger:       log,
	}
}

// LogRequest forwards a request record as a structured event. The record is
// passed through untouched.
func (l *EventLogger) LogRequest(ctx context.Context, req models.Request) {
	l.capture(EventTypeRequest, func() error {
		return l.track(ctx, EventTypeRequest, req)
	})
}

// LogInsertion forwards an insertion record as a structured event.
func (l *EventLogger) LogInsertion(ctx context.Context, ins models.Insertion) {
	l.capture(EventTypeInsertion, func() error {
		return l.track(ctx, EventTypeInsertion, ins)
	})
}

// LogImpression forwards an impression record as a structured event.
func (l *EventLogger) LogImpression(ctx context.Context, imp models.Impression) {
	l.capture(EventTypeImpression, func() error {
		return l.track(ctx, EventTypeImpression, imp)
	})
}

// LogClick forwards a click through the link-click tracking call. When the
// click carries an impression ID, a single impression context is attached;
// otherwise the context argument stays nil.
func (l *EventLogger) LogClick(ctx context.Context, click models.Click) {
	l.capture(eventTypeClick, func() error {
		if err := models.ValidateClick(click); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.ErrValidation)
		}

		transport, err := l.requireTransport()
		if err != nil {
			return err
		}

		var contexts []models.SelfDescribingEvent
		if click.ImpressionID != "" {
			contexts = []models.SelfDescribingEvent{
				{
					Schema: ClickContextSchema,
					Data:   models.ClickContext{ImpressionID: click.ImpressionID},
				},
			}
		}

		err = transport.TrackLinkClick(ctx, click.TargetURL, click.ElementID, []string{}, "", "", contexts)
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.ErrTransport)
		}
		return nil
	})
}

func (l *EventLogger) track(ctx context.Context, eventType EventType, data interface{}) error {
	transport, err := l.requireTransport()
	if err != nil {
		return err
	}

	event := models.SelfDescribingEvent{
		Schema: l.schemas.URI(eventType),
		Data:   data,
	}

	if err := transport.TrackSelfDescribingEvent(ctx, event); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrTransport)
	}
	return nil
}

// capture is the per-operation error boundary: the only observable effect of
// a failure is one call to the configured error handler.
func (l *EventLogger) capture(eventType EventType, fn func() error) {
	start := time.Now()
	err := fn()
	metrics.ObserveEventLogDuration(string(eventType), time.Since(start))

	if err != nil {
		metrics.IncEventLogged(string(eventType), "error")
		l.logger.Debugw("Log operation failed",
			"event_type", eventType,
			"error", err,
		)
		l.handleErr(err)
		return
	}

	metrics.IncEventLogged(string(eventType), "ok")
}

func (l *EventLogger) requireTransport() (snowplow.Transport, error) {
	if l.transport == nil {
		return nil, pkgerrors.ErrConfig.WithDetail("message", "no transport configured")
	}
	return l.transport, nil
}

func (l *EventLogger) requireStore() (storage.Store, error) {
	if l.store == nil {
		return nil, pkgerrors.ErrConfig.WithDetail("message", "no persistence store configured")
	}
	return l.store, nil
}
