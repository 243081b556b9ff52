package services

import (
	"context"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type UserService interface {
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, request *domain.UpdateProfileRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
