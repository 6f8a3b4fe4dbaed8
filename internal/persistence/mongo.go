package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/spec-kit/list-manager/internal/config"
)

const mongoConnectTimeout = 10 * time.Second

// Mongo wraps the audit store client. A zero value means auditing is log-only.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo connects when a URI is configured.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	if cfg.URI == "" {
		logger.Warn("MONGO_URI not provided; audit events are logged only")
		return &Mongo{}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to mongo", zap.String("database", cfg.Database))
	return &Mongo{Client: client, Database: client.Database(cfg.Database)}, nil
}

// Enabled reports whether a database is available.
func (m *Mongo) Enabled() bool {
	return m != nil && m.Database != nil
}

// Ping verifies connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if !m.Enabled() {
		return errors.New("mongo client not configured")
	}
	return m.Client.Ping(ctx, nil)
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if m.Enabled() {
		_ = m.Client.Disconnect(ctx)
	}
}
