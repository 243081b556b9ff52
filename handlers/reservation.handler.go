package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/services"
	"github.com/NakibIheb20/carthatamaz-platform/utils"
)

type ReservationHandler struct {
	reservationService services.ReservationService
	Tracer             trace.Tracer
	logger             *logrus.Logger
}

func NewReservationHandler(reservationService services.ReservationService, tr trace.Tracer, logger *logrus.Logger) ReservationHandler {
	return ReservationHandler{reservationService, tr, logger}
}

func (rh *ReservationHandler) CreateReservation(ctx *gin.Context) {
	_, span := rh.Tracer.Start(ctx.Request.Context(), "ReservationHandler.CreateReservation")
	defer span.End()

	guest, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	var request *domain.ReservationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	reservation, err := rh.reservationService.CreateReservation(ctx.Request.Context(), request, guest.ID.Hex())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rh.respondReservationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "reservation": domain.NewReservationResponse(reservation)})
}

func (rh *ReservationHandler) GetGuestReservations(ctx *gin.Context) {
	guest, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	reservations, err := rh.reservationService.GetReservationsByGuestID(ctx.Request.Context(), guest.ID.Hex())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "reservations": toReservationResponses(reservations)})
}

func (rh *ReservationHandler) GetReservationByID(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	reservation, err := rh.reservationService.GetReservationByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		rh.respondReservationError(ctx, err)
		return
	}

	if user.Role == domain.Guest && reservation.GuestID != user.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"status": "fail", "message": "Access denied"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "reservation": domain.NewReservationResponse(reservation)})
}

func (rh *ReservationHandler) CancelReservation(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	reservation, err := rh.reservationService.GetReservationByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		rh.respondReservationError(ctx, err)
		return
	}
	if user.Role == domain.Guest && reservation.GuestID != user.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"status": "fail", "message": "Access denied"})
		return
	}

	reason := "Canceled by guest"
	var request struct {
		Reason string `json:"reason"`
	}
	if err := ctx.ShouldBindJSON(&request); err == nil && request.Reason != "" {
		reason = request.Reason
	}

	updated, err := rh.reservationService.CancelReservation(ctx.Request.Context(), ctx.Param("id"), reason)
	if err != nil {
		rh.respondReservationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "reservation": domain.NewReservationResponse(updated)})
}

func (rh *ReservationHandler) GetOwnerReservations(ctx *gin.Context) {
	owner, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	reservations, err := rh.reservationService.GetReservationsByOwnerID(ctx.Request.Context(), owner.ID.Hex())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "reservations": toReservationResponses(reservations)})
}

func (rh *ReservationHandler) UpdateReservationStatus(ctx *gin.Context) {
	_, span := rh.Tracer.Start(ctx.Request.Context(), "ReservationHandler.UpdateReservationStatus")
	defer span.End()

	var request *domain.ReservationStatusUpdateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	updated, err := rh.reservationService.UpdateReservationStatus(ctx.Request.Context(), ctx.Param("id"), request.Status, request.Reason)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rh.respondReservationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "reservation": domain.NewReservationResponse(updated)})
}

func (rh *ReservationHandler) GetGuesthouseReservations(ctx *gin.Context) {
	reservations, err := rh.reservationService.GetReservationsByGuesthouseID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		rh.respondReservationError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "reservations": toReservationResponses(reservations)})
}

// GetReservationsByStatus returns every reservation when no status filter
// is given.
func (rh *ReservationHandler) GetReservationsByStatus(ctx *gin.Context) {
	var status *domain.ReservationStatus
	if statusParam := ctx.Query("status"); statusParam != "" {
		parsed := domain.ReservationStatus(statusParam)
		if !parsed.IsValid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "Unknown reservation status"})
			return
		}
		status = &parsed
	}

	reservations, err := rh.reservationService.GetReservationsByStatus(ctx.Request.Context(), status)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "reservations": toReservationResponses(reservations)})
}

func (rh *ReservationHandler) CheckAvailability(ctx *gin.Context) {
	checkIn, err := domain.ParseDate(ctx.Query("check_in"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "Invalid check_in date"})
		return
	}
	checkOut, err := domain.ParseDate(ctx.Query("check_out"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "Invalid check_out date"})
		return
	}

	available, err := rh.reservationService.IsGuesthouseAvailable(ctx.Request.Context(), ctx.Param("id"), checkIn, checkOut)
	if err != nil {
		rh.respondReservationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "available": available})
}

func (rh *ReservationHandler) CalculatePrice(ctx *gin.Context) {
	checkIn, err := domain.ParseDate(ctx.Query("check_in"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "Invalid check_in date"})
		return
	}
	checkOut, err := domain.ParseDate(ctx.Query("check_out"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "Invalid check_out date"})
		return
	}

	price, err := rh.reservationService.CalculateTotalPrice(ctx.Request.Context(), ctx.Param("id"), checkIn, checkOut)
	if err != nil {
		rh.respondReservationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "total_price": price.String()})
}

func (rh *ReservationHandler) respondReservationError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrGuesthouseNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": err.Error()})
	case errors.Is(err, domain.ErrDatesUnavailable):
		ctx.JSON(http.StatusConflict, gin.H{"status": "fail", "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidGuestCount),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidTransition):
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
	default:
		rh.logger.WithFields(logrus.Fields{"path": "handlers/reservation"}).Error("Database exception: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
	}
}

func toReservationResponses(reservations []*domain.Reservation) []*domain.ReservationResponse {
	responses := make([]*domain.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		responses = append(responses, domain.NewReservationResponse(reservation))
	}
	return responses
}
