package repository

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type ReservationRepository interface {
	Insert(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error)
	FindByGuestID(ctx context.Context, guestID primitive.ObjectID) ([]*domain.Reservation, error)
	FindByGuesthouseID(ctx context.Context, guesthouseID primitive.ObjectID) ([]*domain.Reservation, error)
	FindByGuesthouseIDs(ctx context.Context, guesthouseIDs []primitive.ObjectID) ([]*domain.Reservation, error)
	FindByStatus(ctx context.Context, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	FindConflicting(ctx context.Context, guesthouseID primitive.ObjectID, checkIn, checkOut time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
}

// ReservationRepo encapsulates the reservations Mongo collection.
type ReservationRepo struct {
	collection *mongo.Collection
	logger     *logrus.Logger
}

func NewReservationRepo(collection *mongo.Collection, logger *logrus.Logger) *ReservationRepo {
	return &ReservationRepo{
		collection: collection,
		logger:     logger,
	}
}

// EnsureIndexes creates the index backing the conflict query.
func (rr *ReservationRepo) EnsureIndexes(ctx context.Context) error {
	_, err := rr.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "guesthouse_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "check_in", Value: 1},
		},
	})
	if err != nil {
		rr.logger.WithFields(logrus.Fields{"path": "repository/reservation"}).Error("Error creating reservation index: ", err)
	}
	return err
}

func (rr *ReservationRepo) Insert(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	result, err := rr.collection.InsertOne(ctx, reservation)
	if err != nil {
		rr.logger.WithFields(logrus.Fields{"path": "repository/reservation"}).Error("Error inserting reservation: ", err)
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid
	}
	return reservation, nil
}

func (rr *ReservationRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	var reservation domain.Reservation

	query := bson.M{"_id": id}
	err := rr.collection.FindOne(ctx, query).Decode(&reservation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	return &reservation, nil
}

func (rr *ReservationRepo) FindByGuestID(ctx context.Context, guestID primitive.ObjectID) ([]*domain.Reservation, error) {
	return rr.find(ctx, bson.M{"guest_id": guestID})
}

func (rr *ReservationRepo) FindByGuesthouseID(ctx context.Context, guesthouseID primitive.ObjectID) ([]*domain.Reservation, error) {
	return rr.find(ctx, bson.M{"guesthouse_id": guesthouseID})
}

func (rr *ReservationRepo) FindByGuesthouseIDs(ctx context.Context, guesthouseIDs []primitive.ObjectID) ([]*domain.Reservation, error) {
	if len(guesthouseIDs) == 0 {
		return nil, nil
	}
	return rr.find(ctx, bson.M{"guesthouse_id": bson.M{"$in": guesthouseIDs}})
}

// FindByStatus returns every reservation when status is nil.
func (rr *ReservationRepo) FindByStatus(ctx context.Context, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	query := bson.M{}
	if status != nil {
		query["status"] = *status
	}
	return rr.find(ctx, query)
}

// FindConflicting returns reservations on the guesthouse whose date range
// overlaps [checkIn, checkOut) and whose status is one of statuses.
// The half-open comparison lets a check-out date equal another
// reservation's check-in date (same-day turnover).
func (rr *ReservationRepo) FindConflicting(ctx context.Context, guesthouseID primitive.ObjectID, checkIn, checkOut time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	query := bson.M{
		"guesthouse_id": guesthouseID,
		"status":        bson.M{"$in": statuses},
		"check_in":      bson.M{"$lt": checkOut},
		"check_out":     bson.M{"$gt": checkIn},
	}
	return rr.find(ctx, query)
}

func (rr *ReservationRepo) Update(ctx context.Context, reservation *domain.Reservation) error {
	filter := bson.M{"_id": reservation.ID}
	update := bson.M{
		"$set": bson.M{
			"status":              reservation.Status,
			"cancellation_reason": reservation.CancellationReason,
			"updated_at":          reservation.UpdatedAt,
			"confirmed_at":        reservation.ConfirmedAt,
			"canceled_at":         reservation.CanceledAt,
		},
	}

	result, err := rr.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		rr.logger.WithFields(logrus.Fields{"path": "repository/reservation"}).Error("Error updating reservation: ", err)
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (rr *ReservationRepo) find(ctx context.Context, query bson.M) ([]*domain.Reservation, error) {
	cursor, err := rr.collection.Find(ctx, query, options.Find())
	if err != nil {
		return nil, err
	}

	var reservations []*domain.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}
