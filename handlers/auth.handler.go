package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/services"
)

type AuthHandler struct {
	authService services.AuthService
	userService services.UserService
	Tracer      trace.Tracer
	logger      *logrus.Logger
}

func NewAuthHandler(authService services.AuthService, userService services.UserService, tr trace.Tracer, logger *logrus.Logger) AuthHandler {
	return AuthHandler{authService, userService, tr, logger}
}

func (ac *AuthHandler) Registration(ctx *gin.Context) {
	_, span := ac.Tracer.Start(ctx.Request.Context(), "AuthHandler.Registration")
	defer span.End()

	var request *domain.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	response, err := ac.authService.Register(ctx.Request.Context(), request)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			ctx.JSON(http.StatusConflict, gin.H{"status": "fail", "message": "Email already exists"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "accessToken": response.Token, "email": response.Email, "role": response.Role})
}

func (ac *AuthHandler) Login(ctx *gin.Context) {
	_, span := ac.Tracer.Start(ctx.Request.Context(), "AuthHandler.Login")
	defer span.End()

	var credentials *domain.LoginRequest
	if err := ctx.ShouldBindJSON(&credentials); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	response, err := ac.authService.Login(ctx.Request.Context(), credentials)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "Invalid credentials"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "accessToken": response.Token, "email": response.Email, "role": response.Role})
}

func (ac *AuthHandler) ForgotPassword(ctx *gin.Context) {
	var request *domain.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	if err := ac.authService.SendResetCode(ctx.Request.Context(), request.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "User not found"})
			return
		}
		ac.logger.WithFields(logrus.Fields{"path": "handlers/auth"}).Error("Error sending reset code: ", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Verification code sent"})
}

func (ac *AuthHandler) ResetPassword(ctx *gin.Context) {
	var request *domain.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	if err := ac.authService.ResetPassword(ctx.Request.Context(), request); err != nil {
		if errors.Is(err, domain.ErrInvalidResetCode) {
			ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "Invalid or expired reset code"})
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "User not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Password updated"})
}
