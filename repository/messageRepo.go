package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type MessageRepository interface {
	Insert(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Message, error)
	FindByConversationID(ctx context.Context, conversationID string) ([]*domain.Message, error)
	FindByUserInvolved(ctx context.Context, userID primitive.ObjectID) ([]*domain.Message, error)
	FindBySenderID(ctx context.Context, senderID primitive.ObjectID) ([]*domain.Message, error)
	FindByReceiverID(ctx context.Context, receiverID primitive.ObjectID) ([]*domain.Message, error)
	FindUnreadByReceiverID(ctx context.Context, receiverID primitive.ObjectID) ([]*domain.Message, error)
	CountUnreadByReceiverID(ctx context.Context, receiverID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, message *domain.Message) error
}

type MessageRepo struct {
	collection *mongo.Collection
	logger     *logrus.Logger
}

func NewMessageRepo(collection *mongo.Collection, logger *logrus.Logger) *MessageRepo {
	return &MessageRepo{
		collection: collection,
		logger:     logger,
	}
}

func (mr *MessageRepo) Insert(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	result, err := mr.collection.InsertOne(ctx, message)
	if err != nil {
		mr.logger.WithFields(logrus.Fields{"path": "repository/message"}).Error("Error inserting message: ", err)
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}
	return message, nil
}

func (mr *MessageRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Message, error) {
	var message domain.Message

	err := mr.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}

	return &message, nil
}

func (mr *MessageRepo) FindByConversationID(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	return mr.find(ctx, bson.M{"conversation_id": conversationID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (mr *MessageRepo) FindByUserInvolved(ctx context.Context, userID primitive.ObjectID) ([]*domain.Message, error) {
	query := bson.M{"$or": []bson.M{
		{"sender_id": userID},
		{"receiver_id": userID},
	}}
	return mr.find(ctx, query, options.Find())
}

func (mr *MessageRepo) FindBySenderID(ctx context.Context, senderID primitive.ObjectID) ([]*domain.Message, error) {
	return mr.find(ctx, bson.M{"sender_id": senderID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (mr *MessageRepo) FindByReceiverID(ctx context.Context, receiverID primitive.ObjectID) ([]*domain.Message, error) {
	return mr.find(ctx, bson.M{"receiver_id": receiverID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (mr *MessageRepo) FindUnreadByReceiverID(ctx context.Context, receiverID primitive.ObjectID) ([]*domain.Message, error) {
	return mr.find(ctx, bson.M{"receiver_id": receiverID, "read": false},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (mr *MessageRepo) CountUnreadByReceiverID(ctx context.Context, receiverID primitive.ObjectID) (int64, error) {
	return mr.collection.CountDocuments(ctx, bson.M{"receiver_id": receiverID, "read": false})
}

func (mr *MessageRepo) Update(ctx context.Context, message *domain.Message) error {
	filter := bson.M{"_id": message.ID}
	update := bson.M{
		"$set": bson.M{
			"read":    message.Read,
			"read_at": message.ReadAt,
		},
	}

	result, err := mr.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		mr.logger.WithFields(logrus.Fields{"path": "repository/message"}).Error("Error updating message: ", err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

func (mr *MessageRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*domain.Message, error) {
	cursor, err := mr.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var messages []*domain.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
