package models

import "github.com/google/uuid"

// NewEventID returns a fresh random identifier for any event record.
func NewEventID() string {
	return uuid.NewString()
}

// EventIDOrNew keeps a caller-supplied identifier and generates one only when
// the field was left empty.
func EventIDOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func NewRequest() Request {
	return Request{RequestID: NewEventID()}
}

func NewInsertion(requestID string) Insertion {
	return Insertion{
		InsertionID: NewEventID(),
		RequestID:   requestID,
	}
}

func NewImpression(insertionID string) Impression {
	return Impression{
		ImpressionID: NewEventID(),
		InsertionID:  insertionID,
	}
}
