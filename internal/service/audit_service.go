package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/events"
	"github.com/spec-kit/list-manager/internal/repository"
)

// AuditService records auth and user administration events.
type AuditService struct {
	store  repository.AuditRepository
	logger *zap.Logger
}

// NewAuditService creates the service. A nil store logs entries without persisting them.
func NewAuditService(store repository.AuditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{store: store, logger: logger}
}

// Record persists one event.
func (a *AuditService) Record(ctx context.Context, event events.Event) error {
	entry := toAuditEntry(event)
	a.logger.Info("audit",
		zap.String("event_type", entry.Type),
		zap.String("subject_id", entry.SubjectID),
		zap.Any("details", entry.Details))
	if a.store == nil {
		return nil
	}
	return a.store.Insert(ctx, entry)
}

func toAuditEntry(event events.Event) domain.AuditEntry {
	return domain.AuditEntry{
		ID:         event.ID,
		Type:       string(event.Type),
		SubjectID:  event.SubjectID,
		ActorID:    event.ActorID,
		Details:    payloadDetails(event.Payload),
		OccurredAt: event.Timestamp,
	}
}

// payloadDetails flattens a typed payload into a document using its json field names.
func payloadDetails(payload any) map[string]any {
	if payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	var details map[string]any
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil
	}
	return details
}
