package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

// fakeReservationRepo is an in-memory stand-in for the Mongo collection.
type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[primitive.ObjectID]*domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[primitive.ObjectID]*domain.Reservation)}
}

func (f *fakeReservationRepo) Insert(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation.ID = primitive.NewObjectID()
	f.reservations[reservation.ID] = reservation
	return reservation, nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return reservation, nil
}

func (f *fakeReservationRepo) FindByGuestID(_ context.Context, guestID primitive.ObjectID) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.GuestID == guestID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) FindByGuesthouseID(_ context.Context, guesthouseID primitive.ObjectID) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.GuesthouseID == guesthouseID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) FindByGuesthouseIDs(_ context.Context, guesthouseIDs []primitive.ObjectID) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[primitive.ObjectID]bool, len(guesthouseIDs))
	for _, id := range guesthouseIDs {
		wanted[id] = true
	}
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if wanted[r.GuesthouseID] {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) FindByStatus(_ context.Context, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if status == nil || r.Status == *status {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) FindConflicting(_ context.Context, guesthouseID primitive.ObjectID, checkIn, checkOut time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blocking := make(map[domain.ReservationStatus]bool, len(statuses))
	for _, s := range statuses {
		blocking[s] = true
	}
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.GuesthouseID != guesthouseID || !blocking[r.Status] {
			continue
		}
		if r.CheckIn.Before(checkOut) && r.CheckOut.After(checkIn) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, reservation *domain.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reservations[reservation.ID]; !ok {
		return domain.ErrReservationNotFound
	}
	f.reservations[reservation.ID] = reservation
	return nil
}

type fakeGuesthouseRepo struct {
	mu          sync.Mutex
	guesthouses map[primitive.ObjectID]*domain.Guesthouse
}

func newFakeGuesthouseRepo() *fakeGuesthouseRepo {
	return &fakeGuesthouseRepo{guesthouses: make(map[primitive.ObjectID]*domain.Guesthouse)}
}

func (f *fakeGuesthouseRepo) Insert(_ context.Context, guesthouse *domain.Guesthouse) (*domain.Guesthouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if guesthouse.ID.IsZero() {
		guesthouse.ID = primitive.NewObjectID()
	}
	f.guesthouses[guesthouse.ID] = guesthouse
	return guesthouse, nil
}

func (f *fakeGuesthouseRepo) InsertMany(_ context.Context, guesthouses []*domain.Guesthouse) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, gh := range guesthouses {
		if gh.ID.IsZero() {
			gh.ID = primitive.NewObjectID()
		}
		f.guesthouses[gh.ID] = gh
	}
	return len(guesthouses), nil
}

func (f *fakeGuesthouseRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Guesthouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	guesthouse, ok := f.guesthouses[id]
	if !ok {
		return nil, domain.ErrGuesthouseNotFound
	}
	return guesthouse, nil
}

func (f *fakeGuesthouseRepo) FindAll(_ context.Context) ([]*domain.Guesthouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.Guesthouse, 0, len(f.guesthouses))
	for _, gh := range f.guesthouses {
		result = append(result, gh)
	}
	return result, nil
}

func (f *fakeGuesthouseRepo) FindByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]*domain.Guesthouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Guesthouse
	for _, gh := range f.guesthouses {
		if gh.OwnerID == ownerID {
			result = append(result, gh)
		}
	}
	return result, nil
}

func (f *fakeGuesthouseRepo) FindByCity(_ context.Context, city string) ([]*domain.Guesthouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Guesthouse
	for _, gh := range f.guesthouses {
		if gh.City == city {
			result = append(result, gh)
		}
	}
	return result, nil
}

func (f *fakeGuesthouseRepo) Update(_ context.Context, guesthouse *domain.Guesthouse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.guesthouses[guesthouse.ID]; !ok {
		return domain.ErrGuesthouseNotFound
	}
	f.guesthouses[guesthouse.ID] = guesthouse
	return nil
}

func (f *fakeGuesthouseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.guesthouses[id]; !ok {
		return domain.ErrGuesthouseNotFound
	}
	delete(f.guesthouses, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (f *fakeUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hashedPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[primitive.ObjectID]*domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[primitive.ObjectID]*domain.Message)}
}

func (f *fakeMessageRepo) Insert(_ context.Context, message *domain.Message) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	message.ID = primitive.NewObjectID()
	f.messages[message.ID] = message
	return message, nil
}

func (f *fakeMessageRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	message, ok := f.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	return message, nil
}

func (f *fakeMessageRepo) FindByConversationID(_ context.Context, conversationID string) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeMessageRepo) FindByUserInvolved(_ context.Context, userID primitive.ObjectID) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Message
	for _, m := range f.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) FindBySenderID(_ context.Context, senderID primitive.ObjectID) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Message
	for _, m := range f.messages {
		if m.SenderID == senderID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) FindByReceiverID(_ context.Context, receiverID primitive.ObjectID) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Message
	for _, m := range f.messages {
		if m.ReceiverID == receiverID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) FindUnreadByReceiverID(_ context.Context, receiverID primitive.ObjectID) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Message
	for _, m := range f.messages {
		if m.ReceiverID == receiverID && !m.Read {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) CountUnreadByReceiverID(_ context.Context, receiverID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, m := range f.messages {
		if m.ReceiverID == receiverID && !m.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) Update(_ context.Context, message *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[message.ID]; !ok {
		return domain.ErrMessageNotFound
	}
	f.messages[message.ID] = message
	return nil
}
