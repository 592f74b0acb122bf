package events

import "time"

// Event type codes carried on the session event bus.
const (
	TypeTemplateUpdated  = "TEMPLATE_UPDATED"
	TypeContentGenerated = "CONTENT_GENERATED"
	TypeContentRefined   = "CONTENT_REFINED"
	TypeFilesUploaded    = "FILES_UPLOADED"
	TypeSessionCleared   = "SESSION_CLEARED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "TEMPLATE_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used across services.
type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
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

// NewSessionEvent builds an event scoped to one session. Extra fields merge
// into the payload next to session_id.
func NewSessionEvent(eventType, sessionID string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"session_id": sessionID,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
