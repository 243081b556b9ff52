package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NakibIheb20/carthatamaz-platform/handlers"
)

type AdminRouteHandler struct {
	guesthouseHandler  handlers.GuesthouseHandler
	reservationHandler handlers.ReservationHandler
	deserializeUser    gin.HandlerFunc
	authorize          gin.HandlerFunc
}

func NewAdminRouteHandler(guesthouseHandler handlers.GuesthouseHandler, reservationHandler handlers.ReservationHandler,
	deserializeUser, authorize gin.HandlerFunc) AdminRouteHandler {
	return AdminRouteHandler{guesthouseHandler, reservationHandler, deserializeUser, authorize}
}

func (rc *AdminRouteHandler) AdminRoute(rg *gin.RouterGroup) {
	router := rg.Group("/admin")
	router.Use(rc.deserializeUser, rc.authorize)

	router.GET("/reservations", rc.reservationHandler.GetReservationsByStatus)
	router.GET("/reviews", rc.guesthouseHandler.GetAllReviews)
	router.POST("/guesthouses/import", rc.guesthouseHandler.ImportGuesthousesCSV)
}
