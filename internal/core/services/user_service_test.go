package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bucketly/bucketly_backend/internal/apperrors"
	"github.com/bucketly/bucketly_backend/internal/core/domain"
	portssvc "github.com/bucketly/bucketly_backend/internal/core/ports/services"
	"github.com/bucketly/bucketly_backend/internal/core/services"
	"github.com/bucketly/bucketly_backend/internal/dto"
	"github.com/bucketly/bucketly_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	var saved domain.User
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	req := dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cretpass"}
	user, err := s.service.CreateUser(s.ctx, req)

	s.Require().NoError(err)
	s.Equal("alice@example.com", user.Email)
	s.NotEqual("s3cretpass", saved.PasswordHash)
	s.True(utils.CheckPasswordHash("s3cretpass", saved.PasswordHash))
	s.Equal(saved.UserID, saved.CreatedBy)
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	req := dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cretpass"}
	user, err := s.service.CreateUser(s.ctx, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(user)
}

func (s *UserServiceTestSuite) TestUpdateUser_ForbiddenForOtherUsers() {
	userID := uuid.NewString()
	name := "Mallory"

	user, err := s.service.UpdateUser(s.ctx, userID, dto.UpdateUserRequest{Name: &name}, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Nil(user)
	s.mockRepo.AssertNotCalled(s.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestUpdateUser_PatchesFields() {
	userID := uuid.NewString()
	existing := &domain.User{UserID: userID, Name: "Alice", Email: "alice@example.com"}
	s.mockRepo.On("FindUserByID", s.ctx, userID).Return(existing, nil).Once()

	var updated domain.User
	s.mockRepo.On("UpdateUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.User)
		}).Return(nil).Once()

	newName := "Alice B"
	user, err := s.service.UpdateUser(s.ctx, userID, dto.UpdateUserRequest{Name: &newName}, userID)

	s.Require().NoError(err)
	s.Equal("Alice B", user.Name)
	s.Equal("Alice B", updated.Name)
	s.Equal("alice@example.com", updated.Email)
}

func (s *UserServiceTestSuite) TestChangePassword_WrongCurrentPassword() {
	userID := uuid.NewString()
	hash, err := utils.HashPassword("rightpassword")
	s.Require().NoError(err)
	existing := &domain.User{UserID: userID, PasswordHash: hash}
	s.mockRepo.On("FindUserByID", s.ctx, userID).Return(existing, nil).Once()

	req := dto.ChangePasswordRequest{CurrentPassword: "wrongpassword", NewPassword: "newpassword1"}
	err = s.service.ChangePassword(s.ctx, userID, req, userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestChangePassword_Success() {
	userID := uuid.NewString()
	hash, err := utils.HashPassword("rightpassword")
	s.Require().NoError(err)
	existing := &domain.User{UserID: userID, PasswordHash: hash}
	s.mockRepo.On("FindUserByID", s.ctx, userID).Return(existing, nil).Once()

	var updated domain.User
	s.mockRepo.On("UpdateUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.User)
		}).Return(nil).Once()

	req := dto.ChangePasswordRequest{CurrentPassword: "rightpassword", NewPassword: "newpassword1"}
	err = s.service.ChangePassword(s.ctx, userID, req, userID)

	s.Require().NoError(err)
	s.True(utils.CheckPasswordHash("newpassword1", updated.PasswordHash))
}

func (s *UserServiceTestSuite) TestDeleteUser_SoftDeletes() {
	userID := uuid.NewString()
	existing := &domain.User{UserID: userID}
	s.mockRepo.On("FindUserByID", s.ctx, userID).Return(existing, nil).Once()
	s.mockRepo.On("MarkUserDeleted", s.ctx, userID, mock.AnythingOfType("time.Time"), userID).Return(nil).Once()

	err := s.service.DeleteUser(s.ctx, userID, userID)

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestDeleteUser_ForbiddenForOtherUsers() {
	err := s.service.DeleteUser(s.ctx, uuid.NewString(), uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestListUsers_DefaultsPagination() {
	s.mockRepo.On("FindUsers", s.ctx, 20, 0).Return([]domain.User{}, nil).Once()

	_, err := s.service.ListUsers(s.ctx, 0, -5)

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
