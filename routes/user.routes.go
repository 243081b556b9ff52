package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NakibIheb20/carthatamaz-platform/handlers"
)

type UserRouteHandler struct {
	userHandler     handlers.UserHandler
	deserializeUser gin.HandlerFunc
}

func NewUserRouteHandler(userHandler handlers.UserHandler, deserializeUser gin.HandlerFunc) UserRouteHandler {
	return UserRouteHandler{userHandler, deserializeUser}
}

func (rc *UserRouteHandler) UserRoute(rg *gin.RouterGroup) {
	router := rg.Group("/users")
	router.Use(rc.deserializeUser)

	router.GET("/currentUser", rc.userHandler.CurrentUser)
	router.PUT("/profile", rc.userHandler.UpdateProfile)
	router.DELETE("/profile", rc.userHandler.DeleteProfile)
}
