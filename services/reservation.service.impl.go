package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/repository"
)

type ReservationServiceImpl struct {
	reservationRepo repository.ReservationRepository
	guesthouseRepo  repository.GuesthouseRepository
	userRepo        repository.UserRepository
	logger          *logrus.Logger
	Tracer          trace.Tracer

	// one mutex per guesthouse serializes the availability check and the
	// insert, so two overlapping requests cannot both pass the check
	guesthouseLocks sync.Map
}

func NewReservationServiceImpl(reservationRepo repository.ReservationRepository, guesthouseRepo repository.GuesthouseRepository,
	userRepo repository.UserRepository, logger *logrus.Logger, tr trace.Tracer) ReservationService {
	return &ReservationServiceImpl{
		reservationRepo: reservationRepo,
		guesthouseRepo:  guesthouseRepo,
		userRepo:        userRepo,
		logger:          logger,
		Tracer:          tr,
	}
}

func (rs *ReservationServiceImpl) CreateReservation(ctx context.Context, request *domain.ReservationRequest, guestID string) (*domain.Reservation, error) {
	ctx, span := rs.Tracer.Start(ctx, "ReservationService.CreateReservation")
	defer span.End()

	guestOID, err := primitive.ObjectIDFromHex(guestID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if _, err := rs.userRepo.FindByID(ctx, guestOID); err != nil {
		return nil, err
	}

	guesthouseOID, err := primitive.ObjectIDFromHex(request.GuesthouseID)
	if err != nil {
		return nil, domain.ErrGuesthouseNotFound
	}
	guesthouse, err := rs.guesthouseRepo.FindByID(ctx, guesthouseOID)
	if err != nil {
		return nil, err
	}

	checkIn, checkOut, err := parseDateRange(request.CheckIn, request.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := validateDateRange(checkIn, checkOut); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if request.GuestsCount < 1 {
		return nil, domain.ErrInvalidGuestCount
	}

	totalPrice, err := rs.resolveTotalPrice(ctx, request, guesthouse, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	lock := rs.lockGuesthouse(request.GuesthouseID)
	lock.Lock()
	defer lock.Unlock()

	conflicts, err := rs.reservationRepo.FindConflicting(ctx, guesthouseOID, checkIn, checkOut, domain.BlockingStatuses)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		span.SetStatus(codes.Error, "Dates are not available")
		return nil, domain.ErrDatesUnavailable
	}

	now := time.Now().UTC()
	reservation := &domain.Reservation{
		GuestID:         guestOID,
		GuesthouseID:    guesthouseOID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestsCount:     request.GuestsCount,
		Status:          domain.Pending,
		TotalPrice:      domain.DecimalToPrimitive(totalPrice),
		SpecialRequests: request.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return rs.reservationRepo.Insert(ctx, reservation)
}

func (rs *ReservationServiceImpl) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus, reason string) (*domain.Reservation, error) {
	ctx, span := rs.Tracer.Start(ctx, "ReservationService.UpdateReservationStatus")
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReservationNotFound
	}

	reservation, err := rs.reservationRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if !status.IsValid() || !reservation.Status.CanTransitionTo(status) {
		span.SetStatus(codes.Error, "Invalid status transition")
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	switch status {
	case domain.Confirmed:
		reservation.Confirm(now)
	case domain.Canceled:
		reservation.Cancel(reason, now)
	case domain.Rejected:
		reservation.Reject(reason, now)
	case domain.Completed:
		reservation.Complete(now)
	default:
		reservation.ApplyStatus(status, now)
	}

	if err := rs.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (rs *ReservationServiceImpl) CancelReservation(ctx context.Context, id string, reason string) (*domain.Reservation, error) {
	return rs.UpdateReservationStatus(ctx, id, domain.Canceled, reason)
}

func (rs *ReservationServiceImpl) GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReservationNotFound
	}
	return rs.reservationRepo.FindByID(ctx, oid)
}

func (rs *ReservationServiceImpl) GetReservationsByGuestID(ctx context.Context, guestID string) ([]*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(guestID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return rs.reservationRepo.FindByGuestID(ctx, oid)
}

func (rs *ReservationServiceImpl) GetReservationsByGuesthouseID(ctx context.Context, guesthouseID string) ([]*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(guesthouseID)
	if err != nil {
		return nil, domain.ErrGuesthouseNotFound
	}
	return rs.reservationRepo.FindByGuesthouseID(ctx, oid)
}

// GetReservationsByOwnerID joins through guesthouse ownership.
func (rs *ReservationServiceImpl) GetReservationsByOwnerID(ctx context.Context, ownerID string) ([]*domain.Reservation, error) {
	ctx, span := rs.Tracer.Start(ctx, "ReservationService.GetReservationsByOwnerID")
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	guesthouses, err := rs.guesthouseRepo.FindByOwnerID(ctx, oid)
	if err != nil {
		return nil, err
	}

	guesthouseIDs := make([]primitive.ObjectID, 0, len(guesthouses))
	for _, gh := range guesthouses {
		guesthouseIDs = append(guesthouseIDs, gh.ID)
	}

	return rs.reservationRepo.FindByGuesthouseIDs(ctx, guesthouseIDs)
}

// GetReservationsByStatus returns all reservations when status is nil.
func (rs *ReservationServiceImpl) GetReservationsByStatus(ctx context.Context, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return rs.reservationRepo.FindByStatus(ctx, status)
}

func (rs *ReservationServiceImpl) IsGuesthouseAvailable(ctx context.Context, guesthouseID string, checkIn, checkOut time.Time) (bool, error) {
	ctx, span := rs.Tracer.Start(ctx, "ReservationService.IsGuesthouseAvailable")
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(guesthouseID)
	if err != nil {
		return false, domain.ErrGuesthouseNotFound
	}

	conflicts, err := rs.reservationRepo.FindConflicting(ctx, oid, checkIn, checkOut, domain.BlockingStatuses)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// CalculateTotalPrice multiplies the guesthouse per-night rate by the number
// of nights, using exact decimal arithmetic.
func (rs *ReservationServiceImpl) CalculateTotalPrice(ctx context.Context, guesthouseID string, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	ctx, span := rs.Tracer.Start(ctx, "ReservationService.CalculateTotalPrice")
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(guesthouseID)
	if err != nil {
		return decimal.Decimal{}, domain.ErrGuesthouseNotFound
	}
	guesthouse, err := rs.guesthouseRepo.FindByID(ctx, oid)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return totalPriceFor(guesthouse, checkIn, checkOut)
}

func totalPriceFor(guesthouse *domain.Guesthouse, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	pricePerNight, err := domain.PrimitiveToDecimal(guesthouse.PricePerNight)
	if err != nil || pricePerNight.IsNegative() {
		return decimal.Decimal{}, domain.ErrInvalidPrice
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return decimal.Decimal{}, domain.ErrInvalidDateRange
	}

	return pricePerNight.Mul(decimal.NewFromInt(int64(nights))), nil
}

func (rs *ReservationServiceImpl) resolveTotalPrice(ctx context.Context, request *domain.ReservationRequest, guesthouse *domain.Guesthouse, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	if request.TotalPrice != "" {
		price, err := decimal.NewFromString(request.TotalPrice)
		if err != nil || price.IsNegative() {
			return decimal.Decimal{}, domain.ErrInvalidPrice
		}
		return price, nil
	}
	return totalPriceFor(guesthouse, checkIn, checkOut)
}

func (rs *ReservationServiceImpl) lockGuesthouse(guesthouseID string) *sync.Mutex {
	lock, _ := rs.guesthouseLocks.LoadOrStore(guesthouseID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func parseDateRange(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	if checkInStr == "" || checkOutStr == "" {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	checkIn, err := domain.ParseDate(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	checkOut, err := domain.ParseDate(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return checkIn, checkOut, nil
}

// validateDateRange requires check-out strictly after check-in and a
// check-in no earlier than yesterday, so same-day bookings still work
// across timezones.
func validateDateRange(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return domain.ErrInvalidDateRange
	}
	if !checkOut.After(checkIn) {
		return domain.ErrInvalidDateRange
	}

	yesterday := domain.TruncateToDate(time.Now().UTC()).AddDate(0, 0, -1)
	if checkIn.Before(yesterday) {
		return domain.ErrInvalidDateRange
	}
	return nil
}
