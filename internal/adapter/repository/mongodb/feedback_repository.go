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

type feedbackRepository struct {
	collection *mongo.Collection
}

// NewFeedbackRepository creates a feedback repository over the feedbacks collection
func NewFeedbackRepository(db *database.MongoDB) repositories.FeedbackRepository {
	return &feedbackRepository{collection: db.GetCollectionByName(database.CollectionFeedbacks)}
}

func (r *feedbackRepository) Append(ctx context.Context, feedback *entities.Feedback) error {
	_, err := r.collection.InsertOne(ctx, feedback)
	return err
}

func (r *feedbackRepository) ListByMeeting(ctx context.Context, meetingID string) ([]*entities.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"meeting_id": meetingID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	feedbacks := make([]*entities.Feedback, 0)
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}
