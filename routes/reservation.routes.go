package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NakibIheb20/carthatamaz-platform/handlers"
)

type ReservationRouteHandler struct {
	reservationHandler handlers.ReservationHandler
	deserializeUser    gin.HandlerFunc
	authorize          gin.HandlerFunc
}

func NewReservationRouteHandler(reservationHandler handlers.ReservationHandler, deserializeUser, authorize gin.HandlerFunc) ReservationRouteHandler {
	return ReservationRouteHandler{reservationHandler, deserializeUser, authorize}
}

func (rc *ReservationRouteHandler) ReservationRoute(rg *gin.RouterGroup) {
	guest := rg.Group("/guest")
	guest.Use(rc.deserializeUser, rc.authorize)
	guest.POST("/reservations", rc.reservationHandler.CreateReservation)
	guest.GET("/reservations", rc.reservationHandler.GetGuestReservations)
	guest.GET("/reservations/:id", rc.reservationHandler.GetReservationByID)
	guest.PUT("/reservations/:id/cancel", rc.reservationHandler.CancelReservation)

	owner := rg.Group("/owner")
	owner.Use(rc.deserializeUser, rc.authorize)
	owner.GET("/reservations", rc.reservationHandler.GetOwnerReservations)
	owner.PUT("/reservations/:id/status", rc.reservationHandler.UpdateReservationStatus)
}
