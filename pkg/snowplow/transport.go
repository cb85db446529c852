// Package snowplow reproduces the calling convention of the wrapped tracking
// client: self-describing events, link clicks, and a session hook that hands
// callbacks access to the domain user info owned by the transport.
package snowplow

import (
	"context"

	"promotedlogger/pkg/models"
)

// Transport delivers shaped events to the analytics backend. Implementations
// own session tracking and must invoke WithSession callbacks with a
// SessionContext.
type Transport interface {
	TrackSelfDescribingEvent(ctx context.Context, event models.SelfDescribingEvent) error
	TrackLinkClick(ctx context.Context, targetURL, elementID string, tags []string, category, label string, contexts []models.SelfDescribingEvent) error
	WithSession(ctx context.Context, fn SessionCallback) error
}

// SessionCallback receives the transport's session context. Timing is owned
// by the transport; the bundled transports invoke it synchronously.
type SessionCallback func(ctx context.Context, session SessionContext) error

// SessionContext exposes the current session information.
type SessionContext interface {
	DomainUserInfo() (DomainUserInfo, error)
}

// DomainUserInfo mirrors the upstream domain-user-info tuple; SessionID is
// the value at index 6 of that tuple.
type DomainUserInfo struct {
	DomainUserID string
	CreatedAt    int64
	VisitCount   int
	Now          int64
	LastVisitAt  int64
	SessionID    string
}

// DefaultTransport is the process-wide fallback resolved once at logger
// construction when no transport is supplied. It replaces the original
// design's ambient global tracker lookup with an explicit binding; a nil
// value means the logger reports a clear error on first use.
var DefaultTransport Transport
