package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ozank/stationhub/internal/config"
)

// Collection names
const (
	UsersCollection    = "users"
	ReadingsCollection = "readings"
)

// MongoDB database connection structure
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoDB creates a new MongoDB client and verifies connectivity
func NewMongoDB(cfg *config.Config) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout())
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.Database.URI)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.Database.Name),
	}, nil
}

// Users returns the users collection handle
func (db *MongoDB) Users() *mongo.Collection {
	return db.Database.Collection(UsersCollection)
}

// Readings returns the readings collection handle
func (db *MongoDB) Readings() *mongo.Collection {
	return db.Database.Collection(ReadingsCollection)
}

// EnsureIndexes creates the indexes the data model relies on: unique email,
// partial-unique authKey (null when logged out), and the reading lookup keys.
func (db *MongoDB) EnsureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Logged-out users hold an explicit null authKey, so a sparse
			// index would still collide on null; restrict to string keys.
			Keys: bson.D{{Key: "authKey", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"authKey": bson.M{"$type": "string"}}),
		},
	}

	if _, err := db.Users().Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	readingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "deviceName", Value: 1}, {Key: "time", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "time", Value: 1}},
		},
	}

	if _, err := db.Readings().Indexes().CreateMany(ctx, readingIndexes); err != nil {
		return fmt.Errorf("failed to create reading indexes: %w", err)
	}

	return nil
}

// Close disconnects the client
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(ctx)
}
