package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/database"
)

type meetingRepository struct {
	collection *mongo.Collection
}

// NewMeetingRepository creates a meeting repository over the meetings collection
func NewMeetingRepository(db *database.MongoDB) repositories.MeetingRepository {
	return &meetingRepository{collection: db.GetCollectionByName(database.CollectionMeetings)}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	_, err := r.collection.InsertOne(ctx, meeting)
	return err
}

func (r *meetingRepository) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meeting)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) UpdateAgenda(ctx context.Context, id string, agenda []entities.AgendaItem) error {
	if agenda == nil {
		agenda = []entities.AgendaItem{}
	}
	return r.set(ctx, id, bson.M{"agenda": agenda})
}

func (r *meetingRepository) SetInterventionRequest(ctx context.Context, id string, req *entities.InterventionRequest) error {
	return r.set(ctx, id, bson.M{"intervention_request": req})
}

// CompleteInterventionRequest uses an update pipeline so that reason and
// created_at are only filled in when the meeting had no request yet
func (r *meetingRepository) CompleteInterventionRequest(ctx context.Context, id string, at time.Time) error {
	at = at.UTC()
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "intervention_request.status", Value: string(entities.InterventionStatusCompleted)},
			{Key: "intervention_request.reason", Value: ifNull("$intervention_request.reason", "")},
			{Key: "intervention_request.created_at", Value: ifNull("$intervention_request.created_at", at)},
			{Key: "intervention_request.updated_at", Value: at},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	}
	return r.update(ctx, id, pipeline)
}

func ifNull(field string, fallback interface{}) bson.D {
	return bson.D{{Key: "$ifNull", Value: bson.A{field, fallback}}}
}

func (r *meetingRepository) set(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	return r.update(ctx, id, bson.M{"$set": fields})
}

func (r *meetingRepository) update(ctx context.Context, id string, update interface{}) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
