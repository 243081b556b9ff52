package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NakibIheb20/carthatamaz-platform/handlers"
)

type GuesthouseRouteHandler struct {
	guesthouseHandler  handlers.GuesthouseHandler
	reservationHandler handlers.ReservationHandler
	deserializeUser    gin.HandlerFunc
	authorize          gin.HandlerFunc
}

func NewGuesthouseRouteHandler(guesthouseHandler handlers.GuesthouseHandler, reservationHandler handlers.ReservationHandler,
	deserializeUser, authorize gin.HandlerFunc) GuesthouseRouteHandler {
	return GuesthouseRouteHandler{guesthouseHandler, reservationHandler, deserializeUser, authorize}
}

func (rc *GuesthouseRouteHandler) GuesthouseRoute(rg *gin.RouterGroup) {
	// browsing stays open, availability checks included
	public := rg.Group("/guesthouses")
	public.GET("", rc.guesthouseHandler.GetAllGuesthouses)
	public.GET("/:id", rc.guesthouseHandler.GetGuesthouseByID)
	public.GET("/:id/reviews", rc.guesthouseHandler.GetGuesthouseReviews)
	public.GET("/:id/availability", rc.reservationHandler.CheckAvailability)
	public.GET("/:id/price", rc.reservationHandler.CalculatePrice)

	protected := rg.Group("/guesthouses")
	protected.Use(rc.deserializeUser, rc.authorize)
	protected.PUT("/:id", rc.guesthouseHandler.UpdateGuesthouse)
	protected.DELETE("/:id", rc.guesthouseHandler.DeleteGuesthouse)

	owner := rg.Group("/owner")
	owner.Use(rc.deserializeUser, rc.authorize)
	owner.POST("/guesthouses", rc.guesthouseHandler.CreateGuesthouse)
	owner.GET("/guesthouses", rc.guesthouseHandler.GetOwnerGuesthouses)
	owner.GET("/guesthouses/:id/reservations", rc.reservationHandler.GetGuesthouseReservations)
}
