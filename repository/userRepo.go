package repository

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserRepo struct {
	collection *mongo.Collection
	logger     *logrus.Logger
}

func NewUserRepo(collection *mongo.Collection, logger *logrus.Logger) *UserRepo {
	return &UserRepo{
		collection: collection,
		logger:     logger,
	}
}

// EnsureIndexes creates the unique email index.
func (ur *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := ur.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		ur.logger.WithFields(logrus.Fields{"path": "repository/user"}).Error("Error creating user index: ", err)
	}
	return err
}

func (ur *UserRepo) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Email = strings.ToLower(user.Email)

	result, err := ur.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		ur.logger.WithFields(logrus.Fields{"path": "repository/user"}).Error("Error inserting user: ", err)
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

func (ur *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User

	query := bson.M{"_id": id}
	err := ur.collection.FindOne(ctx, query).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (ur *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User

	query := bson.M{"email": strings.ToLower(email)}
	err := ur.collection.FindOne(ctx, query).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (ur *UserRepo) Update(ctx context.Context, user *domain.User) error {
	filter := bson.M{"_id": user.ID}
	update := bson.M{
		"$set": bson.M{
			"full_name":    user.FullName,
			"phone_number": user.PhoneNumber,
			"picture_url":  user.PictureURL,
		},
	}

	result, err := ur.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		ur.logger.WithFields(logrus.Fields{"path": "repository/user"}).Error("Error updating user: ", err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (ur *UserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"password": hashedPassword}}

	result, err := ur.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		ur.logger.WithFields(logrus.Fields{"path": "repository/user"}).Error("Error updating password: ", err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (ur *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := ur.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		ur.logger.WithFields(logrus.Fields{"path": "repository/user"}).Error("Error deleting user: ", err)
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
