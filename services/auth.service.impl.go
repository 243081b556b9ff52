package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/cache"
	"github.com/NakibIheb20/carthatamaz-platform/config"
	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/repository"
	"github.com/NakibIheb20/carthatamaz-platform/utils"
)

type AuthServiceImpl struct {
	userRepo  repository.UserRepository
	codeCache *cache.ResetCodeCache
	cfg       *config.Config
	logger    *logrus.Logger
	Tracer    trace.Tracer
}

func NewAuthServiceImpl(userRepo repository.UserRepository, codeCache *cache.ResetCodeCache,
	cfg *config.Config, logger *logrus.Logger, tr trace.Tracer) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		codeCache: codeCache,
		cfg:       cfg,
		logger:    logger,
		Tracer:    tr,
	}
}

func (as *AuthServiceImpl) Register(ctx context.Context, request *domain.RegisterRequest) (*domain.AuthResponse, error) {
	ctx, span := as.Tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if !request.Role.IsValid() {
		return nil, errors.New("invalid role")
	}
	if !utils.ValidatePassword(request.Password) {
		return nil, errors.New("password must be at least 8 characters with upper, lower and digit")
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:    request.FullName,
		Email:       request.Email,
		Password:    hashedPassword,
		PhoneNumber: request.PhoneNumber,
		Role:        request.Role,
	}

	saved, err := as.userRepo.Insert(ctx, user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	token, err := utils.CreateToken(saved.Email, as.cfg.SecretKey)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{Token: token, Email: saved.Email, Role: saved.Role}, nil
}

func (as *AuthServiceImpl) Login(ctx context.Context, request *domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, span := as.Tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	user, err := as.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.VerifyPassword(user.Password, request.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.Email, as.cfg.SecretKey)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{Token: token, Email: user.Email, Role: user.Role}, nil
}

// SendResetCode emails a 6-digit code and keeps it in the TTL cache until
// it is used or expires.
func (as *AuthServiceImpl) SendResetCode(ctx context.Context, email string) error {
	ctx, span := as.Tracer.Start(ctx, "AuthService.SendResetCode")
	defer span.End()

	user, err := as.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}
	if err := as.codeCache.PostResetCode(user.Email, code); err != nil {
		return err
	}

	emailData := &utils.EmailData{
		Subject: "Password reset",
		Text:    "Your verification code is: " + code,
		Email:   user.Email,
	}
	return utils.SendEmail(emailData, as.cfg, as.logger)
}

func (as *AuthServiceImpl) ResetPassword(ctx context.Context, request *domain.ResetPasswordRequest) error {
	ctx, span := as.Tracer.Start(ctx, "AuthService.ResetPassword")
	defer span.End()

	user, err := as.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return err
	}

	savedCode, err := as.codeCache.GetResetCode(user.Email)
	if err != nil || savedCode != request.Code {
		span.SetStatus(codes.Error, "Invalid or expired reset code")
		return domain.ErrInvalidResetCode
	}

	if !utils.ValidatePassword(request.NewPassword) {
		return errors.New("password must be at least 8 characters with upper, lower and digit")
	}
	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}

	if err := as.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	if err := as.codeCache.DeleteResetCode(user.Email); err != nil {
		as.logger.WithFields(logrus.Fields{"path": "services/auth"}).Warn("Error deleting used reset code: ", err)
	}
	return nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
