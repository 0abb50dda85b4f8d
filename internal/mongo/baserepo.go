package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoURL = "mongodb://localhost:27017"
	defaultDBName   = "comanda"

	connectTimeout = 10 * time.Second
)

// BaseRepo owns the MongoDB client for the process. Start must succeed before
// any collection-level repo built from GetDatabase is used.
type BaseRepo struct {
	client *mongo.Client
	db     *mongo.Database
	logger apt.Logger
	config *apt.Config
}

func NewBaseRepo(config *apt.Config, logger apt.Logger) *BaseRepo {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &BaseRepo{
		logger: logger,
		config: config,
	}
}

// Start connects and pings so a bad URL fails the boot rather than the first
// request.
func (r *BaseRepo) Start(ctx context.Context) error {
	connString := r.config.GetStringOrDef("db.mongo.url", defaultMongoURL)
	dbName := r.config.GetStringOrDef("db.mongo.name", defaultDBName)

	opts := options.Client().ApplyURI(connString).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	r.client = client
	r.db = client.Database(dbName)

	r.logger.Infof("Connected to MongoDB database: %s", dbName)
	return nil
}

func (r *BaseRepo) Stop(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
	}
	r.logger.Info("Disconnected from MongoDB")
	return nil
}

func (r *BaseRepo) GetDatabase() *mongo.Database {
	return r.db
}
