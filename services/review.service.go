package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/repository"
)

type ReviewService interface {
	GetAllReviews(ctx context.Context) ([]*domain.Review, error)
	GetReviewsByGuesthouseID(ctx context.Context, guesthouseID string) ([]*domain.Review, error)
}

type ReviewServiceImpl struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewServiceImpl(reviewRepo repository.ReviewRepository) ReviewService {
	return &ReviewServiceImpl{reviewRepo: reviewRepo}
}

func (rs *ReviewServiceImpl) GetAllReviews(ctx context.Context) ([]*domain.Review, error) {
	return rs.reviewRepo.FindAll(ctx)
}

func (rs *ReviewServiceImpl) GetReviewsByGuesthouseID(ctx context.Context, guesthouseID string) ([]*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(guesthouseID)
	if err != nil {
		return nil, domain.ErrGuesthouseNotFound
	}
	return rs.reviewRepo.FindByGuesthouseID(ctx, oid)
}
