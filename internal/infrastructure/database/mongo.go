package database

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

// Collection names of the document store
const (
	CollectionMeetings  = "meetings"
	CollectionComments  = "comments"
	CollectionMinutes   = "minutes"
	CollectionFeedbacks = "feedbacks"
)

// MongoDB wraps the driver client and the selected database
type MongoDB struct {
	Client   *mongo.Client
	database string
}

// NewMongoDB connects to MongoDB and verifies the connection
func NewMongoDB(cfg *config.Config) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("✅ MongoDB connected successfully")

	return NewMongoDBFromClient(client, cfg.Mongo.Database), nil
}

// NewMongoDBFromClient wraps a client that is already connected
func NewMongoDBFromClient(client *mongo.Client, database string) *MongoDB {
	return &MongoDB{Client: client, database: database}
}

// GetCollectionByName returns a collection of the configured database
func (m *MongoDB) GetCollectionByName(name string) *mongo.Collection {
	return m.Client.Database(m.database).Collection(name)
}

// EnsureIndexes creates the indexes the repositories query by
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionComments: {
			{Keys: bson.D{{Key: "meeting_id", Value: 1}, {Key: "speak_at", Value: 1}}},
		},
		CollectionMinutes: {
			{
				Keys:    bson.D{{Key: "meeting_id", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionFeedbacks: {
			{Keys: bson.D{{Key: "meeting_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := m.GetCollectionByName(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// Close disconnects the client
func (m *MongoDB) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	log.Println("✅ MongoDB connection closed")
	return nil
}
