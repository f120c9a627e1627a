package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is one uploaded picture owned by exactly one event. PublicID is the
// object store identifier needed to delete the underlying blob; it may be
// empty on legacy records.
type Image struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL      string             `bson:"url" json:"url"`
	PublicID string             `bson:"public_id" json:"publicId"`
	Caption  string             `bson:"caption" json:"caption"`
}

type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Date      time.Time          `bson:"date" json:"date"`
	Month     string             `bson:"month" json:"month"`
	Year      int                `bson:"year" json:"year"`
	Images    []Image            `bson:"images" json:"images"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewEvent builds an event with Month and Year derived from date. The derived
// fields are computed exactly once here and never recomputed on read.
func NewEvent(title string, date time.Time, images []Image) *Event {
	if images == nil {
		images = []Image{}
	}
	return &Event{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Date:      date,
		Month:     date.Month().String(),
		Year:      date.Year(),
		Images:    images,
		CreatedAt: time.Now(),
	}
}

type CreateEventRequest struct {
	Title string `form:"title" validate:"required"`
	Date  string `form:"date" validate:"required"`
}
