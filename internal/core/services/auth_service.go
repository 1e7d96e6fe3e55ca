package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bucketly/bucketly_backend/internal/apperrors"
	portsrepo "github.com/bucketly/bucketly_backend/internal/core/ports/repositories"
	portssvc "github.com/bucketly/bucketly_backend/internal/core/ports/services"
	"github.com/bucketly/bucketly_backend/internal/dto"
	"github.com/bucketly/bucketly_backend/internal/utils"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures do not reveal which one it was.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrValidation)

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	userRepo  portsrepo.UserReader
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new auth service with the provided dependencies
func NewAuthService(userRepo portsrepo.UserReader, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a signed JWT
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}

	if user.DeletedAt != nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login failed, password mismatch", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign JWT", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.LogInfo(ctx, "Login successful", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		User:  dto.ToUserResponse(user),
		Token: token,
	}, nil
}
