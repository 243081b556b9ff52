package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/repository"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type UserServiceImpl struct {
	userRepo repository.UserRepository
	logger   *logrus.Logger
	Tracer   trace.Tracer
}

func NewUserServiceImpl(userRepo repository.UserRepository, logger *logrus.Logger, tr trace.Tracer) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		logger:   logger,
		Tracer:   tr,
	}
}

func (us *UserServiceImpl) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return us.userRepo.FindByID(ctx, oid)
}

func (us *UserServiceImpl) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if !emailRegex.MatchString(email) {
		return nil, errors.New("invalid email format")
	}
	return us.userRepo.FindByEmail(ctx, strings.ToLower(email))
}

func (us *UserServiceImpl) UpdateProfile(ctx context.Context, id string, request *domain.UpdateProfileRequest) (*domain.User, error) {
	ctx, span := us.Tracer.Start(ctx, "UserService.UpdateProfile")
	defer span.End()

	user, err := us.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.FullName != "" {
		user.FullName = request.FullName
	}
	if request.PhoneNumber != "" {
		user.PhoneNumber = request.PhoneNumber
	}
	if request.PictureURL != "" {
		user.PictureURL = request.PictureURL
	}

	if err := us.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (us *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	return us.userRepo.Delete(ctx, oid)
}
