package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, request *domain.ReservationRequest, guestID string) (*domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus, reason string) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, id string, reason string) (*domain.Reservation, error)
	GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetReservationsByGuestID(ctx context.Context, guestID string) ([]*domain.Reservation, error)
	GetReservationsByGuesthouseID(ctx context.Context, guesthouseID string) ([]*domain.Reservation, error)
	GetReservationsByOwnerID(ctx context.Context, ownerID string) ([]*domain.Reservation, error)
	GetReservationsByStatus(ctx context.Context, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	IsGuesthouseAvailable(ctx context.Context, guesthouseID string, checkIn, checkOut time.Time) (bool, error)
	CalculateTotalPrice(ctx context.Context, guesthouseID string, checkIn, checkOut time.Time) (decimal.Decimal, error)
}
