package snowplow

import (
	"time"

	"promotedlogger/pkg/models"
)

type EnvelopeKind string

const (
	EnvelopeKindSelfDescribing EnvelopeKind = "self_describing"
	EnvelopeKindLinkClick      EnvelopeKind = "link_click"
)

// Envelope is the wire format the bundled transports emit. Exactly one of
// Event and Click is set, matching Kind.
type Envelope struct {
	EventID string                      `json:"eid"`
	Kind    EnvelopeKind                `json:"kind"`
	SentAt  time.Time                   `json:"sentAt"`
	Event   *models.SelfDescribingEvent `json:"event,omitempty"`
	Click   *LinkClick                  `json:"click,omitempty"`
}

// LinkClick carries the positional arguments of the link-click tracking call.
type LinkClick struct {
	TargetURL string                       `json:"targetUrl"`
	ElementID string                       `json:"elementId"`
	Tags      []string                     `json:"tags"`
	Category  string                       `json:"category"`
	Label     string                       `json:"label"`
	Contexts  []models.SelfDescribingEvent `json:"contexts,omitempty"`
}
