package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/bucketly/bucketly_backend/internal/apperrors"
	"github.com/bucketly/bucketly_backend/internal/core/domain"
	portssvc "github.com/bucketly/bucketly_backend/internal/core/ports/services"
	"github.com/bucketly/bucketly_backend/internal/core/services"
	"github.com/bucketly/bucketly_backend/internal/dto"
	"github.com/bucketly/bucketly_backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.AuthSvcFacade
	ctx      context.Context

	jwtSecret string
	user      *domain.User
	password  string
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.jwtSecret = "test-secret"
	s.service = services.NewAuthService(s.mockRepo, s.jwtSecret, time.Hour, "bucketly-test")
	s.ctx = context.Background()

	s.password = "s3cretpass"
	hash, err := utils.HashPassword(s.password)
	s.Require().NoError(err)
	s.user = &domain.User{
		UserID:       uuid.NewString(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	s.mockRepo.On("FindUserByEmail", s.ctx, s.user.Email).Return(s.user, nil).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Email: s.user.Email, Password: s.password})

	s.Require().NoError(err)
	s.Require().NotNil(resp)
	s.Equal(s.user.UserID, resp.User.UserID)
	s.NotEmpty(resp.Token)

	claims, err := utils.ParseAndValidateJWT(resp.Token, s.jwtSecret)
	s.Require().NoError(err)
	s.Equal(s.user.UserID, claims.Subject)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	s.mockRepo.On("FindUserByEmail", s.ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrInvalidCredentials)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(resp)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	s.mockRepo.On("FindUserByEmail", s.ctx, s.user.Email).Return(s.user, nil).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Email: s.user.Email, Password: "wrongpass"})

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrInvalidCredentials)
	s.Nil(resp)
}

func (s *AuthServiceTestSuite) TestLogin_DeletedUser() {
	deletedAt := time.Now().UTC()
	s.user.DeletedAt = &deletedAt
	s.mockRepo.On("FindUserByEmail", s.ctx, s.user.Email).Return(s.user, nil).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Email: s.user.Email, Password: s.password})

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrInvalidCredentials)
	s.Nil(resp)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
