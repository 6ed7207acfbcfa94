package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/database"
)

type messageRepository struct {
	collection *mongo.Collection
}

// NewMessageRepository creates a message repository over the comments collection
func NewMessageRepository(db *database.MongoDB) repositories.MessageRepository {
	return &messageRepository{collection: db.GetCollectionByName(database.CollectionComments)}
}

func (r *messageRepository) Append(ctx context.Context, message *entities.Message) error {
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

func (r *messageRepository) ListByMeeting(ctx context.Context, meetingID string, includeAI bool) ([]*entities.Message, error) {
	filter := bson.M{"meeting_id": meetingID}
	if !includeAI {
		filter["meta.role"] = bson.M{"$ne": entities.RoleAI}
	}

	opts := options.Find().SetSort(bson.D{{Key: "speak_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := make([]*entities.Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
