package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NakibIheb20/carthatamaz-platform/handlers"
)

type AuthRouteHandler struct {
	authHandler handlers.AuthHandler
}

func NewAuthRouteHandler(authHandler handlers.AuthHandler) AuthRouteHandler {
	return AuthRouteHandler{authHandler}
}

func (rc *AuthRouteHandler) AuthRoute(rg *gin.RouterGroup) {
	router := rg.Group("/auth")

	router.POST("/register", rc.authHandler.Registration)
	router.POST("/login", rc.authHandler.Login)
	router.POST("/forgotPassword", rc.authHandler.ForgotPassword)
	router.POST("/resetPassword", rc.authHandler.ResetPassword)
}
