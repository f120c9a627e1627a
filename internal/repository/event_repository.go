package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ozgurkara/event-gallery-backend/internal/models"
)

const eventCollection = "events"

type EventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{collection: db.Collection(eventCollection)}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	res, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return event, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetAll returns events sorted by date descending. An empty titleFilter
// returns everything; otherwise titles must match exactly.
func (r *EventRepository) GetAll(ctx context.Context, titleFilter string) ([]models.Event, error) {
	filter := bson.M{}
	if titleFilter != "" {
		filter["title"] = titleFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) DistinctTitles(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "title", bson.M{})
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			titles = append(titles, s)
		}
	}
	return titles, nil
}

// UpdateImages replaces the event's image list. Concurrent updates to the
// same event are last-write-wins.
func (r *EventRepository) UpdateImages(ctx context.Context, id primitive.ObjectID, images []models.Image) error {
	if images == nil {
		images = []models.Image{}
	}

	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"images": images}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrEventNotFound
	}
	return nil
}
