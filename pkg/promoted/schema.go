package promoted

import (
	"fmt"
	"sync"

	"promotedlogger/internal/constants"
)

type EventType string

const (
	EventTypeUser       EventType = "user"
	EventTypeRequest    EventType = "request"
	EventTypeInsertion  EventType = "insertion"
	EventTypeImpression EventType = "impression"
)

// eventTypeClick only labels metrics and log lines; clicks go out through the
// link-click call and carry no platform-namespaced schema of their own.
const eventTypeClick EventType = "click"

// ClickContextSchema tags the impression context attached to click events.
// It is platform independent.
const ClickContextSchema = constants.ClickContextSchema

// SchemaURI derives the structured-event schema identifier for an event type
// under a platform namespace.
func SchemaURI(platformName string, eventType EventType) string {
	return fmt.Sprintf("iglu:%s.%s/%s/%s/%s",
		constants.SchemaVendor,
		platformName,
		eventType,
		constants.SchemaFormat,
		constants.SchemaVersion,
	)
}

// schemaSet memoizes the four schema URIs per logger instance. The platform
// name never changes after construction, so first use fixes them for good.
type schemaSet struct {
	platformName string
	once         sync.Once
	byType       map[EventType]string
}

func newSchemaSet(platformName string) *schemaSet {
	return &schemaSet{platformName: platformName}
}

func (s *schemaSet) URI(eventType EventType) string {
	s.once.Do(func() {
		s.byType = make(map[EventType]string, 4)
		for _, et := range []EventType{EventTypeUser, EventTypeRequest, EventTypeInsertion, EventTypeImpression} {
			s.byType[et] = SchemaURI(s.platformName, et)
		}
	})
	return s.byType[eventType]
}
