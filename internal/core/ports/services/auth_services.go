package services

import (
	"context"

	"github.com/bucketly/bucketly_backend/internal/dto"
)

// AuthSvcFacade defines authentication operations.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
