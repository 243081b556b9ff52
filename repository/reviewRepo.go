package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type ReviewRepository interface {
	FindAll(ctx context.Context) ([]*domain.Review, error)
	FindByGuesthouseID(ctx context.Context, guesthouseID primitive.ObjectID) ([]*domain.Review, error)
}

type ReviewRepo struct {
	collection *mongo.Collection
	logger     *logrus.Logger
}

func NewReviewRepo(collection *mongo.Collection, logger *logrus.Logger) *ReviewRepo {
	return &ReviewRepo{
		collection: collection,
		logger:     logger,
	}
}

func (rr *ReviewRepo) FindAll(ctx context.Context) ([]*domain.Review, error) {
	return rr.find(ctx, bson.M{})
}

func (rr *ReviewRepo) FindByGuesthouseID(ctx context.Context, guesthouseID primitive.ObjectID) ([]*domain.Review, error) {
	return rr.find(ctx, bson.M{"guesthouse_id": guesthouseID})
}

func (rr *ReviewRepo) find(ctx context.Context, query bson.M) ([]*domain.Review, error) {
	cursor, err := rr.collection.Find(ctx, query)
	if err != nil {
		rr.logger.WithFields(logrus.Fields{"path": "repository/review"}).Error("Error finding reviews: ", err)
		return nil, err
	}

	var reviews []*domain.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
