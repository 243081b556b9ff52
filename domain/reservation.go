package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReservationStatus string

const (
	Pending   ReservationStatus = "PENDING"
	Confirmed ReservationStatus = "CONFIRMED"
	Canceled  ReservationStatus = "CANCELED"
	Rejected  ReservationStatus = "REJECTED"
	Completed ReservationStatus = "COMPLETED"
)

// BlockingStatuses are the statuses that make a reservation count
// against a guesthouse calendar when checking for conflicts.
var BlockingStatuses = []ReservationStatus{Pending, Confirmed}

// allowed status transitions; everything absent here is rejected,
// terminal states (CANCELED, REJECTED, COMPLETED) have no exits
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	Pending:   {Confirmed, Canceled, Rejected},
	Confirmed: {Canceled, Completed},
}

func (rs ReservationStatus) IsValid() bool {
	switch rs {
	case Pending, Confirmed, Canceled, Rejected, Completed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status change is permitted.
// A same-status transition is treated as an idempotent no-op and allowed.
func (rs ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if rs == next {
		return true
	}
	for _, allowed := range allowedTransitions[rs] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	GuestID            primitive.ObjectID   `bson:"guest_id" json:"guest_id"`
	GuesthouseID       primitive.ObjectID   `bson:"guesthouse_id" json:"guesthouse_id"`
	CheckIn            time.Time            `bson:"check_in" json:"check_in"`
	CheckOut           time.Time            `bson:"check_out" json:"check_out"`
	GuestsCount        int                  `bson:"guests_count" json:"guests_count"`
	Status             ReservationStatus    `bson:"status" json:"status"`
	TotalPrice         primitive.Decimal128 `bson:"total_price" json:"total_price"`
	SpecialRequests    string               `bson:"special_requests,omitempty" json:"special_requests,omitempty"`
	CancellationReason string               `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time            `bson:"updated_at" json:"updated_at"`
	ConfirmedAt        *time.Time           `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	CanceledAt         *time.Time           `bson:"canceled_at,omitempty" json:"canceled_at,omitempty"`
}

// Nights is the whole-day difference between check-out and check-in,
// 0 when either date is missing.
func (r *Reservation) Nights() int {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return 0
	}
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// ApplyStatus sets the new status and stamps the lifecycle timestamps.
// ConfirmedAt and CanceledAt are set exactly once, the first time the
// reservation enters CONFIRMED or CANCELED.
func (r *Reservation) ApplyStatus(status ReservationStatus, now time.Time) {
	r.Status = status
	r.UpdatedAt = now

	if status == Confirmed && r.ConfirmedAt == nil {
		confirmedAt := now
		r.ConfirmedAt = &confirmedAt
	}
	if status == Canceled && r.CanceledAt == nil {
		canceledAt := now
		r.CanceledAt = &canceledAt
	}
}

func (r *Reservation) Confirm(now time.Time) {
	r.ApplyStatus(Confirmed, now)
}

func (r *Reservation) Cancel(reason string, now time.Time) {
	r.ApplyStatus(Canceled, now)
	r.CancellationReason = reason
}

func (r *Reservation) Reject(reason string, now time.Time) {
	r.ApplyStatus(Rejected, now)
	r.CancellationReason = reason
}

func (r *Reservation) Complete(now time.Time) {
	r.ApplyStatus(Completed, now)
}

type ReservationRequest struct {
	GuesthouseID    string `json:"guesthouse_id" binding:"required"`
	CheckIn         string `json:"check_in" binding:"required,dateonly"`
	CheckOut        string `json:"check_out" binding:"required,dateonly"`
	GuestsCount     int    `json:"guests_count" binding:"required,gte=1"`
	SpecialRequests string `json:"special_requests"`
	TotalPrice      string `json:"total_price"`
}

type ReservationStatusUpdateRequest struct {
	Status ReservationStatus `json:"status" binding:"required"`
	Reason string            `json:"reason"`
}

type ReservationResponse struct {
	ID                 string               `json:"id"`
	GuestID            string               `json:"guest_id"`
	GuesthouseID       string               `json:"guesthouse_id"`
	CheckIn            string               `json:"check_in"`
	CheckOut           string               `json:"check_out"`
	GuestsCount        int                  `json:"guests_count"`
	Nights             int                  `json:"nights"`
	Status             ReservationStatus    `json:"status"`
	TotalPrice         primitive.Decimal128 `json:"total_price"`
	SpecialRequests    string               `json:"special_requests,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	ConfirmedAt        *time.Time           `json:"confirmed_at,omitempty"`
	CanceledAt         *time.Time           `json:"canceled_at,omitempty"`
}

func NewReservationResponse(r *Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                 r.ID.Hex(),
		GuestID:            r.GuestID.Hex(),
		GuesthouseID:       r.GuesthouseID.Hex(),
		CheckIn:            FormatDate(r.CheckIn),
		CheckOut:           FormatDate(r.CheckOut),
		GuestsCount:        r.GuestsCount,
		Nights:             r.Nights(),
		Status:             r.Status,
		TotalPrice:         r.TotalPrice,
		SpecialRequests:    r.SpecialRequests,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		ConfirmedAt:        r.ConfirmedAt,
		CanceledAt:         r.CanceledAt,
	}
}

// DecimalToPrimitive converts an exact decimal amount into the Decimal128
// representation stored in Mongo.
func DecimalToPrimitive(d decimal.Decimal) primitive.Decimal128 {
	p, _ := primitive.ParseDecimal128(d.String())
	return p
}

// PrimitiveToDecimal converts a stored Decimal128 amount back into a
// decimal for arithmetic.
func PrimitiveToDecimal(p primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(p.String())
}
