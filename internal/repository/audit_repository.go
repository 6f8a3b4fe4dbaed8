package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/list-manager/internal/domain"
)

const (
	collectionAuthEvents = "auth_events"
	auditTimeout         = 5 * time.Second
)

// AuditRepository stores audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

type mongoAuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository returns a MongoDB-backed implementation.
func NewAuditRepository(db *mongo.Database) AuditRepository {
	return &mongoAuditRepository{col: db.Collection(collectionAuthEvents)}
}

func (r *mongoAuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, auditTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, entry)
	return err
}

// EnsureAuditIndexes creates the indexes used by audit lookups.
func EnsureAuditIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	}
	_, err := db.Collection(collectionAuthEvents).Indexes().CreateMany(ctx, indexes)
	return err
}
