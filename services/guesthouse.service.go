package services

import (
	"context"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type GuesthouseService interface {
	GetAllGuesthouses(ctx context.Context) ([]*domain.Guesthouse, error)
	GetGuesthouseByID(ctx context.Context, id string) (*domain.Guesthouse, error)
	GetGuesthousesByOwnerID(ctx context.Context, ownerID string) ([]*domain.Guesthouse, error)
	GetGuesthousesByCity(ctx context.Context, city string) ([]*domain.Guesthouse, error)
	CreateGuesthouse(ctx context.Context, request *domain.GuesthouseCreateRequest, ownerID string) (*domain.Guesthouse, error)
	UpdateGuesthouse(ctx context.Context, id string, request *domain.GuesthouseCreateRequest) (*domain.Guesthouse, error)
	DeleteGuesthouse(ctx context.Context, id string) error
}
