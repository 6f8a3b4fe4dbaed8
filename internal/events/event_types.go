package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp EventType = "user_signed_up"
	EventUserLoggedIn EventType = "user_logged_in"
	EventLoginFailed  EventType = "login_failed"
	EventUserUpdated  EventType = "user_updated"
	EventUserBlocked  EventType = "user_blocked"
)

// AllEventTypes lists every type published by the services.
func AllEventTypes() []EventType {
	return []EventType{EventUserSignedUp, EventUserLoggedIn, EventLoginFailed, EventUserUpdated, EventUserBlocked}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id,omitempty"`
	ActorID   *string   `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, subjectID string, actorID *string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload. The email is the normalized address that was tried.
type LoginFailedPayload struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// UserUpdatedPayload payload.
type UserUpdatedPayload struct {
	Fields []string `json:"fields"`
}
