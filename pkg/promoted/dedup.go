package promoted

import (
	"context"

	pkgerrors "promotedlogger/pkg/errors"
	"promotedlogger/pkg/metrics"
	"promotedlogger/pkg/models"
	"promotedlogger/pkg/snowplow"
)

// LogUser is the deferred form of user logging: the user record is handed to
// the transport's session hook and the dedup check runs once the transport
// invokes the callback with its session context.
func (l *EventLogger) LogUser(ctx context.Context, user models.User) {
	l.capture(EventTypeUser, func() error {
		transport, err := l.requireTransport()
		if err != nil {
			return err
		}

		return transport.WithSession(ctx, func(cbCtx context.Context, session snowplow.SessionContext) error {
			return l.logUserWithSession(cbCtx, session, user)
		})
	})
}

// LogUserWithSession is the direct form: the caller already holds a session
// context and the dedup check runs synchronously.
func (l *EventLogger) LogUserWithSession(ctx context.Context, session snowplow.SessionContext, user models.User) {
	l.capture(EventTypeUser, func() error {
		return l.logUserWithSession(ctx, session, user)
	})
}

// logUserWithSession emits the user event at most once per unchanged
// session-and-content pair. The persisted marker pair is only written after a
// successful emission, session ID first.
func (l *EventLogger) logUserWithSession(ctx context.Context, session snowplow.SessionContext, user models.User) error {
	if session == nil {
		return pkgerrors.ErrSession.WithDetail("message", "no session context supplied")
	}

	info, err := session.DomainUserInfo()
	if err != nil {
		metrics.IncUserDedup("error")
		return pkgerrors.Wrap(err, pkgerrors.ErrSession)
	}

	store, err := l.requireStore()
	if err != nil {
		return err
	}

	prevSession, _, err := store.GetItem(ctx, l.sessionKey)
	if err != nil {
		metrics.IncUserDedup("error")
		return pkgerrors.Wrap(err, pkgerrors.ErrStorage)
	}

	prevHash, _, err := store.GetItem(ctx, l.hashKey)
	if err != nil {
		metrics.IncUserDedup("error")
		return pkgerrors.Wrap(err, pkgerrors.ErrStorage)
	}

	hash, err := l.hasher.ComputeHash(user)
	if err != nil {
		metrics.IncUserDedup("error")
		return pkgerrors.Wrap(err, pkgerrors.ErrValidation)
	}

	if info.SessionID == prevSession && hash == prevHash {
		metrics.IncUserDedup("deduplicated")
		l.logger.Debugw("User event deduplicated",
			"session_id", info.SessionID,
		)
		return nil
	}

	if err := l.track(ctx, EventTypeUser, user); err != nil {
		metrics.IncUserDedup("error")
		return err
	}

	if err := store.SetItem(ctx, l.sessionKey, info.SessionID); err != nil {
		metrics.IncUserDedup("error")
		return pkgerrors.Wrap(err, pkgerrors.ErrStorage)
	}
	if err := store.SetItem(ctx, l.hashKey, hash); err != nil {
		metrics.IncUserDedup("error")
		return pkgerrors.Wrap(err, pkgerrors.ErrStorage)
	}

	metrics.IncUserDedup("emitted")
	return nil
}
