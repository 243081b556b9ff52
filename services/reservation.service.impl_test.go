package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type reservationFixture struct {
	service    ReservationService
	repo       *fakeReservationRepo
	guest      *domain.User
	guesthouse *domain.Guesthouse
	ghRepo     *fakeGuesthouseRepo
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()

	reservationRepo := newFakeReservationRepo()
	guesthouseRepo := newFakeGuesthouseRepo()
	userRepo := newFakeUserRepo()

	guest, err := userRepo.Insert(context.Background(), &domain.User{
		FullName: "Amina Trabelsi",
		Email:    "amina@example.com",
		Role:     domain.Guest,
	})
	require.NoError(t, err)

	rate, _, err := domain.ParsePriceString("$50")
	require.NoError(t, err)

	guesthouse, err := guesthouseRepo.Insert(context.Background(), &domain.Guesthouse{
		Title:         "Dar Sidi Bou Said",
		City:          "Sidi Bou Said",
		PricePerNight: domain.DecimalToPrimitive(rate),
		Currency:      "$",
	})
	require.NoError(t, err)

	service := NewReservationServiceImpl(reservationRepo, guesthouseRepo, userRepo, newTestLogger(), newTestTracer())

	return &reservationFixture{
		service:    service,
		repo:       reservationRepo,
		guest:      guest,
		guesthouse: guesthouse,
		ghRepo:     guesthouseRepo,
	}
}

func futureDate(daysFromNow int) string {
	return domain.FormatDate(time.Now().UTC().AddDate(0, 0, daysFromNow))
}

func (f *reservationFixture) request(checkInOffset, checkOutOffset int) *domain.ReservationRequest {
	return &domain.ReservationRequest{
		GuesthouseID: f.guesthouse.ID.Hex(),
		CheckIn:      futureDate(checkInOffset),
		CheckOut:     futureDate(checkOutOffset),
		GuestsCount:  2,
	}
}

func TestCreateReservationStartsPending(t *testing.T) {
	f := newReservationFixture(t)

	reservation, err := f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, domain.Pending, reservation.Status)
	assert.Equal(t, 3, reservation.Nights())
	assert.False(t, reservation.CreatedAt.IsZero())
	assert.Nil(t, reservation.ConfirmedAt)
	assert.Nil(t, reservation.CanceledAt)

	price, err := domain.PrimitiveToDecimal(reservation.TotalPrice)
	require.NoError(t, err)
	assert.Equal(t, "150", price.String())
}

func TestCreateReservationRejectsOverlap(t *testing.T) {
	f := newReservationFixture(t)

	_, err := f.service.CreateReservation(context.Background(), f.request(10, 14), f.guest.ID.Hex())
	require.NoError(t, err)

	_, err = f.service.CreateReservation(context.Background(), f.request(12, 16), f.guest.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrDatesUnavailable)

	_, err = f.service.CreateReservation(context.Background(), f.request(8, 11), f.guest.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrDatesUnavailable)

	// existing stay fully inside the requested range
	_, err = f.service.CreateReservation(context.Background(), f.request(9, 15), f.guest.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrDatesUnavailable)
}

func TestBackToBackStaysDoNotConflict(t *testing.T) {
	f := newReservationFixture(t)

	_, err := f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	require.NoError(t, err)

	// check-in on the previous guest's check-out day
	_, err = f.service.CreateReservation(context.Background(), f.request(13, 15), f.guest.ID.Hex())
	assert.NoError(t, err)

	_, err = f.service.CreateReservation(context.Background(), f.request(8, 10), f.guest.ID.Hex())
	assert.NoError(t, err)
}

func TestCanceledReservationFreesTheDates(t *testing.T) {
	f := newReservationFixture(t)

	first, err := f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	require.NoError(t, err)

	_, err = f.service.CancelReservation(context.Background(), first.ID.Hex(), "change of plans")
	require.NoError(t, err)

	_, err = f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	assert.NoError(t, err)
}

func TestRejectedReservationFreesTheDates(t *testing.T) {
	f := newReservationFixture(t)

	first, err := f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	require.NoError(t, err)

	_, err = f.service.UpdateReservationStatus(context.Background(), first.ID.Hex(), domain.Rejected, "maintenance")
	require.NoError(t, err)

	_, err = f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	assert.NoError(t, err)
}

func TestCreateReservationDateValidation(t *testing.T) {
	f := newReservationFixture(t)

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"check-out equals check-in", futureDate(10), futureDate(10)},
		{"check-out before check-in", futureDate(12), futureDate(10)},
		{"check-in far in the past", futureDate(-30), futureDate(5)},
		{"unparseable date", "10/07/2026", futureDate(12)},
		{"missing check-out", futureDate(10), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := &domain.ReservationRequest{
				GuesthouseID: f.guesthouse.ID.Hex(),
				CheckIn:      tt.checkIn,
				CheckOut:     tt.checkOut,
				GuestsCount:  2,
			}
			_, err := f.service.CreateReservation(context.Background(), request, f.guest.ID.Hex())
			assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
		})
	}
}

func TestCreateReservationRejectsZeroGuests(t *testing.T) {
	f := newReservationFixture(t)

	request := f.request(10, 12)
	request.GuestsCount = 0

	_, err := f.service.CreateReservation(context.Background(), request, f.guest.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrInvalidGuestCount)
}

func TestCreateReservationUnknownReferences(t *testing.T) {
	f := newReservationFixture(t)

	request := f.request(10, 12)
	request.GuesthouseID = primitive.NewObjectID().Hex()
	_, err := f.service.CreateReservation(context.Background(), request, f.guest.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrGuesthouseNotFound)

	_, err = f.service.CreateReservation(context.Background(), f.request(10, 12), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateReservationWithExplicitTotalPrice(t *testing.T) {
	f := newReservationFixture(t)

	request := f.request(10, 12)
	request.TotalPrice = "200.50"

	reservation, err := f.service.CreateReservation(context.Background(), request, f.guest.ID.Hex())
	require.NoError(t, err)

	price, err := domain.PrimitiveToDecimal(reservation.TotalPrice)
	require.NoError(t, err)
	assert.Equal(t, "200.5", price.String())
}

func TestCreateReservationRejectsBadTotalPrice(t *testing.T) {
	f := newReservationFixture(t)

	for _, badPrice := range []string{"abc", "-5"} {
		request := f.request(10, 12)
		request.TotalPrice = badPrice

		_, err := f.service.CreateReservation(context.Background(), request, f.guest.ID.Hex())
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	}
}

func TestUpdateReservationStatusTransitions(t *testing.T) {
	f := newReservationFixture(t)

	reservation, err := f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	require.NoError(t, err)

	confirmed, err := f.service.UpdateReservationStatus(context.Background(), reservation.ID.Hex(), domain.Confirmed, "")
	require.NoError(t, err)
	assert.Equal(t, domain.Confirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)

	firstConfirmedAt := *confirmed.ConfirmedAt

	// repeated confirmation is an idempotent no-op
	again, err := f.service.UpdateReservationStatus(context.Background(), reservation.ID.Hex(), domain.Confirmed, "")
	require.NoError(t, err)
	assert.Equal(t, firstConfirmedAt, *again.ConfirmedAt)

	completed, err := f.service.UpdateReservationStatus(context.Background(), reservation.ID.Hex(), domain.Completed, "")
	require.NoError(t, err)
	assert.Equal(t, domain.Completed, completed.Status)

	_, err = f.service.UpdateReservationStatus(context.Background(), reservation.ID.Hex(), domain.Canceled, "too late")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateReservationStatusRejectsInvalidExits(t *testing.T) {
	f := newReservationFixture(t)

	reservation, err := f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	require.NoError(t, err)

	_, err = f.service.UpdateReservationStatus(context.Background(), reservation.ID.Hex(), domain.Completed, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pending cannot complete without confirmation")

	_, err = f.service.UpdateReservationStatus(context.Background(), reservation.ID.Hex(), domain.ReservationStatus("ARCHIVED"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	canceled, err := f.service.CancelReservation(context.Background(), reservation.ID.Hex(), "no longer needed")
	require.NoError(t, err)
	assert.Equal(t, "no longer needed", canceled.CancellationReason)

	_, err = f.service.UpdateReservationStatus(context.Background(), reservation.ID.Hex(), domain.Confirmed, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "canceled is terminal")
}

func TestUpdateReservationStatusUnknownID(t *testing.T) {
	f := newReservationFixture(t)

	_, err := f.service.UpdateReservationStatus(context.Background(), primitive.NewObjectID().Hex(), domain.Confirmed, "")
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)

	_, err = f.service.UpdateReservationStatus(context.Background(), "not-an-id", domain.Confirmed, "")
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestCalculateTotalPrice(t *testing.T) {
	f := newReservationFixture(t)

	checkIn := time.Now().UTC().AddDate(0, 0, 10).Truncate(24 * time.Hour)
	checkOut := checkIn.AddDate(0, 0, 3)

	price, err := f.service.CalculateTotalPrice(context.Background(), f.guesthouse.ID.Hex(), checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, "150", price.String())

	_, err = f.service.CalculateTotalPrice(context.Background(), f.guesthouse.ID.Hex(), checkIn, checkIn)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestIsGuesthouseAvailable(t *testing.T) {
	f := newReservationFixture(t)

	_, err := f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	require.NoError(t, err)

	checkIn := time.Now().UTC().AddDate(0, 0, 11).Truncate(24 * time.Hour)
	available, err := f.service.IsGuesthouseAvailable(context.Background(), f.guesthouse.ID.Hex(), checkIn, checkIn.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.False(t, available)

	laterCheckIn := time.Now().UTC().AddDate(0, 0, 20).Truncate(24 * time.Hour)
	available, err = f.service.IsGuesthouseAvailable(context.Background(), f.guesthouse.ID.Hex(), laterCheckIn, laterCheckIn.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestGetReservationsByOwnerID(t *testing.T) {
	f := newReservationFixture(t)

	owner := primitive.NewObjectID()
	f.guesthouse.OwnerID = owner
	require.NoError(t, f.ghRepo.Update(context.Background(), f.guesthouse))

	rate, _, err := domain.ParsePriceString("$80")
	require.NoError(t, err)
	otherGuesthouse, err := f.ghRepo.Insert(context.Background(), &domain.Guesthouse{
		Title:         "Dar El Medina",
		City:          "Tunis",
		PricePerNight: domain.DecimalToPrimitive(rate),
		OwnerID:       primitive.NewObjectID(),
	})
	require.NoError(t, err)

	_, err = f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	require.NoError(t, err)

	otherRequest := f.request(10, 13)
	otherRequest.GuesthouseID = otherGuesthouse.ID.Hex()
	_, err = f.service.CreateReservation(context.Background(), otherRequest, f.guest.ID.Hex())
	require.NoError(t, err)

	reservations, err := f.service.GetReservationsByOwnerID(context.Background(), owner.Hex())
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, f.guesthouse.ID, reservations[0].GuesthouseID)
}

func TestGetReservationsByStatus(t *testing.T) {
	f := newReservationFixture(t)

	first, err := f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
	require.NoError(t, err)
	_, err = f.service.CreateReservation(context.Background(), f.request(20, 23), f.guest.ID.Hex())
	require.NoError(t, err)

	_, err = f.service.UpdateReservationStatus(context.Background(), first.ID.Hex(), domain.Confirmed, "")
	require.NoError(t, err)

	confirmed := domain.Confirmed
	reservations, err := f.service.GetReservationsByStatus(context.Background(), &confirmed)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, first.ID, reservations[0].ID)

	all, err := f.service.GetReservationsByStatus(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestConcurrentCreateOnlyOneSucceeds(t *testing.T) {
	f := newReservationFixture(t)

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.CreateReservation(context.Background(), f.request(10, 13), f.guest.ID.Hex())
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrDatesUnavailable):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one overlapping request may win")
	assert.Equal(t, attempts-1, conflicted)

	pending := domain.Pending
	reservations, err := f.service.GetReservationsByStatus(context.Background(), &pending)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
}
