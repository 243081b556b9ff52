package services

import (
	"context"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type AuthService interface {
	Register(ctx context.Context, request *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, request *domain.LoginRequest) (*domain.AuthResponse, error)
	SendResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request *domain.ResetPasswordRequest) error
}
