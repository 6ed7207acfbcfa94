package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/database"
)

type minutesRepository struct {
	collection *mongo.Collection
}

// NewMinutesRepository creates a minutes repository over the minutes collection.
// Each meeting owns exactly one document named entities.MinutesDocumentName.
func NewMinutesRepository(db *database.MongoDB) repositories.MinutesRepository {
	return &minutesRepository{collection: db.GetCollectionByName(database.CollectionMinutes)}
}

func minutesFilter(meetingID string) bson.M {
	return bson.M{"meeting_id": meetingID, "name": entities.MinutesDocumentName}
}

func (r *minutesRepository) Get(ctx context.Context, meetingID string) (*entities.Minutes, error) {
	var minutes entities.Minutes
	err := r.collection.FindOne(ctx, minutesFilter(meetingID)).Decode(&minutes)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &minutes, nil
}

func (r *minutesRepository) Ensure(ctx context.Context, minutes *entities.Minutes) (*entities.Minutes, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"agenda":      minutes.Agenda,
		"decisions":   minutes.Decisions,
		"action_plan": minutes.ActionPlan,
		"updated_at":  minutes.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, minutesFilter(minutes.MeetingID), update, opts); err != nil {
		return nil, err
	}
	return r.Get(ctx, minutes.MeetingID)
}

func (r *minutesRepository) ReplaceAgenda(ctx context.Context, meetingID string, agenda []entities.MinutesAgendaItem) error {
	return r.upsert(ctx, meetingID, bson.M{"$set": bson.M{"agenda": agenda}})
}

func (r *minutesRepository) ReplaceDecisions(ctx context.Context, meetingID string, decisions []entities.Decision) error {
	return r.upsert(ctx, meetingID, bson.M{"$set": bson.M{"decisions": decisions}})
}

func (r *minutesRepository) AppendDecision(ctx context.Context, meetingID string, decision entities.Decision) error {
	return r.upsert(ctx, meetingID, bson.M{"$push": bson.M{"decisions": decision}})
}

func (r *minutesRepository) ReplaceActionPlan(ctx context.Context, meetingID string, items []entities.ActionItem) error {
	return r.upsert(ctx, meetingID, bson.M{"$set": bson.M{"action_plan": items}})
}

func (r *minutesRepository) AppendActionItem(ctx context.Context, meetingID string, item entities.ActionItem) error {
	return r.upsert(ctx, meetingID, bson.M{"$push": bson.M{"action_plan": item}})
}

// upsert applies update and stamps updated_at, creating the document if missing
func (r *minutesRepository) upsert(ctx context.Context, meetingID string, update bson.M) error {
	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		update["$set"] = set
	}
	set["updated_at"] = time.Now().UTC()

	_, err := r.collection.UpdateOne(ctx, minutesFilter(meetingID), update, options.Update().SetUpsert(true))
	return err
}
