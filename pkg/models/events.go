package models

// SelfDescribingEvent pairs a schema URI with an arbitrary data record. It is
// the payload shape every structured event is delivered as.
type SelfDescribingEvent struct {
	Schema string      `json:"schema"`
	Data   interface{} `json:"data"`
}

// User describes end-user identity attributes. The record is opaque to the
// logger beyond being serializable; Properties carries anything the caller
// wants forwarded.
type User struct {
	UserID         string                 `json:"userId,omitempty"`
	LogUserID      string                 `json:"logUserId,omitempty"`
	IsInternalUser bool                   `json:"isInternalUser,omitempty"`
	Properties     map[string]interface{} `json:"properties,omitempty"`
}

// Request describes a single content-serving request.
type Request struct {
	RequestID  string                 `json:"requestId"`
	ViewID     string                 `json:"viewId,omitempty"`
	SessionID  string                 `json:"sessionId,omitempty"`
	UseCase    string                 `json:"useCase,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Insertion describes one piece of content placed into a request's response.
type Insertion struct {
	InsertionID string                 `json:"insertionId"`
	RequestID   string                 `json:"requestId,omitempty"`
	ContentID   string                 `json:"contentId,omitempty"`
	Position    *int                   `json:"position,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
}

// Impression describes a rendering/viewing event for an insertion.
type Impression struct {
	ImpressionID string                 `json:"impressionId"`
	InsertionID  string                 `json:"insertionId,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// Click describes a user interaction with a rendered element.
type Click struct {
	ImpressionID string `json:"impressionId,omitempty"`
	TargetURL    string `json:"targetUrl"`
	ElementID    string `json:"elementId"`
}

// ClickContext is the context record attached to click events that are tied
// to an impression.
type ClickContext struct {
	ImpressionID string `json:"impressionId"`
}
