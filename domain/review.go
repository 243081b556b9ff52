package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuesthouseID primitive.ObjectID `bson:"guesthouse_id" json:"guesthouse_id"`
	ReviewerName string             `bson:"reviewer_name" json:"reviewer_name"`
	Rating       float64            `bson:"rating" json:"rating"`
	Comment      string             `bson:"comment" json:"comment"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
