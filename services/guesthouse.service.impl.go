package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/repository"
)

type GuesthouseServiceImpl struct {
	guesthouseRepo repository.GuesthouseRepository
	logger         *logrus.Logger
	Tracer         trace.Tracer
}

func NewGuesthouseServiceImpl(guesthouseRepo repository.GuesthouseRepository, logger *logrus.Logger, tr trace.Tracer) GuesthouseService {
	return &GuesthouseServiceImpl{
		guesthouseRepo: guesthouseRepo,
		logger:         logger,
		Tracer:         tr,
	}
}

func (gs *GuesthouseServiceImpl) GetAllGuesthouses(ctx context.Context) ([]*domain.Guesthouse, error) {
	return gs.guesthouseRepo.FindAll(ctx)
}

func (gs *GuesthouseServiceImpl) GetGuesthouseByID(ctx context.Context, id string) (*domain.Guesthouse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGuesthouseNotFound
	}
	return gs.guesthouseRepo.FindByID(ctx, oid)
}

func (gs *GuesthouseServiceImpl) GetGuesthousesByOwnerID(ctx context.Context, ownerID string) ([]*domain.Guesthouse, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return gs.guesthouseRepo.FindByOwnerID(ctx, oid)
}

func (gs *GuesthouseServiceImpl) GetGuesthousesByCity(ctx context.Context, city string) ([]*domain.Guesthouse, error) {
	return gs.guesthouseRepo.FindByCity(ctx, city)
}

func (gs *GuesthouseServiceImpl) CreateGuesthouse(ctx context.Context, request *domain.GuesthouseCreateRequest, ownerID string) (*domain.Guesthouse, error) {
	ctx, span := gs.Tracer.Start(ctx, "GuesthouseService.CreateGuesthouse")
	defer span.End()

	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	guesthouse, err := guesthouseFromRequest(request)
	if err != nil {
		return nil, err
	}
	guesthouse.OwnerID = ownerOID

	return gs.guesthouseRepo.Insert(ctx, guesthouse)
}

func (gs *GuesthouseServiceImpl) UpdateGuesthouse(ctx context.Context, id string, request *domain.GuesthouseCreateRequest) (*domain.Guesthouse, error) {
	ctx, span := gs.Tracer.Start(ctx, "GuesthouseService.UpdateGuesthouse")
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGuesthouseNotFound
	}

	existing, err := gs.guesthouseRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	updated, err := guesthouseFromRequest(request)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.OwnerID = existing.OwnerID
	updated.ReviewsCount = existing.ReviewsCount

	if err := gs.guesthouseRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (gs *GuesthouseServiceImpl) DeleteGuesthouse(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGuesthouseNotFound
	}
	return gs.guesthouseRepo.Delete(ctx, oid)
}

// the display price string is parsed once here, the stored guesthouse
// carries a structured rate plus the currency marker
func guesthouseFromRequest(request *domain.GuesthouseCreateRequest) (*domain.Guesthouse, error) {
	rate, currency, err := domain.ParsePriceString(request.Price)
	if err != nil {
		return nil, err
	}

	return &domain.Guesthouse{
		Thumbnail:     request.Thumbnail,
		Title:         request.Title,
		Description:   request.Description,
		PricePerNight: domain.DecimalToPrimitive(rate),
		Currency:      currency,
		PriceLabel:    request.Price,
		Latitude:      request.Latitude,
		Longitude:     request.Longitude,
		URL:           request.URL,
		City:          request.City,
	}, nil
}
