package domain

import "time"

// AuditEntry records an authentication or user administration event.
type AuditEntry struct {
	ID         string         `bson:"_id" json:"id"`
	Type       string         `bson:"type" json:"type"`
	SubjectID  string         `bson:"subject_id,omitempty" json:"subjectId,omitempty"`
	ActorID    *string        `bson:"actor_id,omitempty" json:"actorId,omitempty"`
	Details    map[string]any `bson:"details,omitempty" json:"details,omitempty"`
	OccurredAt time.Time      `bson:"occurred_at" json:"occurredAt"`
}
