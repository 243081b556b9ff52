package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type GuesthouseRepository interface {
	Insert(ctx context.Context, guesthouse *domain.Guesthouse) (*domain.Guesthouse, error)
	InsertMany(ctx context.Context, guesthouses []*domain.Guesthouse) (int, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Guesthouse, error)
	FindAll(ctx context.Context) ([]*domain.Guesthouse, error)
	FindByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Guesthouse, error)
	FindByCity(ctx context.Context, city string) ([]*domain.Guesthouse, error)
	Update(ctx context.Context, guesthouse *domain.Guesthouse) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type GuesthouseRepo struct {
	collection *mongo.Collection
	logger     *logrus.Logger
}

func NewGuesthouseRepo(collection *mongo.Collection, logger *logrus.Logger) *GuesthouseRepo {
	return &GuesthouseRepo{
		collection: collection,
		logger:     logger,
	}
}

func (gr *GuesthouseRepo) Insert(ctx context.Context, guesthouse *domain.Guesthouse) (*domain.Guesthouse, error) {
	result, err := gr.collection.InsertOne(ctx, guesthouse)
	if err != nil {
		gr.logger.WithFields(logrus.Fields{"path": "repository/guesthouse"}).Error("Error inserting guesthouse: ", err)
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		guesthouse.ID = oid
	}
	return guesthouse, nil
}

func (gr *GuesthouseRepo) InsertMany(ctx context.Context, guesthouses []*domain.Guesthouse) (int, error) {
	if len(guesthouses) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(guesthouses))
	for _, gh := range guesthouses {
		docs = append(docs, gh)
	}

	result, err := gr.collection.InsertMany(ctx, docs)
	if err != nil {
		gr.logger.WithFields(logrus.Fields{"path": "repository/guesthouse"}).Error("Error inserting guesthouses: ", err)
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

func (gr *GuesthouseRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Guesthouse, error) {
	var guesthouse domain.Guesthouse

	query := bson.M{"_id": id}
	err := gr.collection.FindOne(ctx, query).Decode(&guesthouse)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrGuesthouseNotFound
		}
		return nil, err
	}

	return &guesthouse, nil
}

func (gr *GuesthouseRepo) FindAll(ctx context.Context) ([]*domain.Guesthouse, error) {
	return gr.find(ctx, bson.M{})
}

func (gr *GuesthouseRepo) FindByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Guesthouse, error) {
	return gr.find(ctx, bson.M{"owner_id": ownerID})
}

func (gr *GuesthouseRepo) FindByCity(ctx context.Context, city string) ([]*domain.Guesthouse, error) {
	return gr.find(ctx, bson.M{"city": city})
}

func (gr *GuesthouseRepo) Update(ctx context.Context, guesthouse *domain.Guesthouse) error {
	filter := bson.M{"_id": guesthouse.ID}

	result, err := gr.collection.ReplaceOne(ctx, filter, guesthouse)
	if err != nil {
		gr.logger.WithFields(logrus.Fields{"path": "repository/guesthouse"}).Error("Error updating guesthouse: ", err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrGuesthouseNotFound
	}
	return nil
}

func (gr *GuesthouseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := gr.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		gr.logger.WithFields(logrus.Fields{"path": "repository/guesthouse"}).Error("Error deleting guesthouse: ", err)
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrGuesthouseNotFound
	}
	return nil
}

func (gr *GuesthouseRepo) find(ctx context.Context, query bson.M) ([]*domain.Guesthouse, error) {
	cursor, err := gr.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	var guesthouses []*domain.Guesthouse
	if err = cursor.All(ctx, &guesthouses); err != nil {
		return nil, err
	}
	return guesthouses, nil
}
