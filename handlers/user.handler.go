package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/services"
	"github.com/NakibIheb20/carthatamaz-platform/utils"
)

type UserHandler struct {
	userService services.UserService
	Tracer      trace.Tracer
	logger      *logrus.Logger
}

func NewUserHandler(userService services.UserService, tr trace.Tracer, logger *logrus.Logger) UserHandler {
	return UserHandler{userService, tr, logger}
}

func (uh *UserHandler) CurrentUser(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}

func (uh *UserHandler) UpdateProfile(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	var request *domain.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	updated, err := uh.userService.UpdateProfile(ctx.Request.Context(), user.ID.Hex(), request)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "User not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "user": updated})
}

func (uh *UserHandler) DeleteProfile(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	if err := uh.userService.DeleteUser(ctx.Request.Context(), user.ID.Hex()); err != nil {
		uh.logger.WithFields(logrus.Fields{"path": "handlers/user"}).Error("Error deleting user: ", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Account deleted"})
}
