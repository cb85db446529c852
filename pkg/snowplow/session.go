package snowplow

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ProcessSession is the session state the bundled transports hand to
// WithSession callbacks. One session spans the lifetime of the process.
type ProcessSession struct {
	mu   sync.Mutex
	info DomainUserInfo
}

func NewProcessSession() *ProcessSession {
	now := time.Now().UnixMilli()
	return &ProcessSession{
		info: DomainUserInfo{
			DomainUserID: uuid.NewString(),
			CreatedAt:    now,
			VisitCount:   1,
			LastVisitAt:  now,
			SessionID:    uuid.NewString(),
		},
	}
}

func (s *ProcessSession) DomainUserInfo() (DomainUserInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.info
	info.Now = time.Now().UnixMilli()
	return info, nil
}

// Rotate starts a new session for the same domain user. Exposed so callers
// simulating session rollover (and tests) can force a user event re-emit.
func (s *ProcessSession) Rotate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.info.LastVisitAt = time.Now().UnixMilli()
	s.info.VisitCount++
	s.info.SessionID = uuid.NewString()
}
