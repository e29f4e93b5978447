package events

import (
	"strings"
	"time"
)

// Event is anything forwarded to the event bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Subject maps NOTE_UPDATED under prefix "notes" to "notes.note_updated".
func Subject(prefix string, e Event) string {
	return prefix + "." + strings.ToLower(e.EventType())
}
