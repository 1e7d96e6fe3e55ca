package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bucketly/bucketly_backend/internal/apperrors"
	"github.com/bucketly/bucketly_backend/internal/core/domain"
	portssvc "github.com/bucketly/bucketly_backend/internal/core/ports/services"
	"github.com/bucketly/bucketly_backend/internal/core/services"
	"github.com/bucketly/bucketly_backend/internal/dto"
)

type BucketServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockBucketRepository
	mockAuthorizer *MockWorkspaceAuthorizer
	service        portssvc.BucketSvcFacade

	ctx         context.Context
	userID      string
	workspaceID string
	workspace   *domain.Workspace
}

func (s *BucketServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockBucketRepository)
	s.mockAuthorizer = new(MockWorkspaceAuthorizer)
	s.service = services.NewBucketService(s.mockRepo, s.mockAuthorizer)

	s.ctx = context.Background()
	s.userID = uuid.NewString()
	s.workspaceID = uuid.NewString()
	s.workspace = &domain.Workspace{
		WorkspaceID:  s.workspaceID,
		UserID:       s.userID,
		Currency:     domain.CurrencyBRL,
		TotalBalance: decimal.NewFromInt(1000),
	}
	s.mockAuthorizer.On("AuthorizeOwner", s.ctx, s.userID, s.workspaceID).Return(s.workspace, nil).Maybe()
}

func (s *BucketServiceTestSuite) TestCreateBucket_Success() {
	s.mockRepo.On("FindBucketsByWorkspaceID", s.ctx, s.workspaceID).Return([]domain.Bucket{
		{BucketID: "existing", WorkspaceID: s.workspaceID, AllocationPercentage: pct("40")},
	}, nil).Once()

	var saved domain.Bucket
	s.mockRepo.On("SaveBucket", s.ctx, mock.AnythingOfType("domain.Bucket")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Bucket)
		}).Return(nil).Once()

	req := dto.CreateBucketRequest{Name: "Groceries", Type: "SPENDING", AllocationPercentage: pct("30")}
	resp, err := s.service.CreateBucket(s.ctx, s.workspaceID, req, s.userID)

	s.Require().NoError(err)
	s.Equal("Groceries", resp.Name)
	s.True(saved.CurrentBalance.IsZero())
	s.True(saved.TotalAllocated.IsZero())
	s.True(saved.TotalSpent.IsZero())
	s.Equal(s.workspaceID, saved.WorkspaceID)
	s.NotEmpty(saved.BucketID)
}

func (s *BucketServiceTestSuite) TestCreateBucket_RejectsPercentageAboveHundred() {
	req := dto.CreateBucketRequest{Name: "Bad", Type: "SPENDING", AllocationPercentage: pct("120")}
	resp, err := s.service.CreateBucket(s.ctx, s.workspaceID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(resp)
	s.mockRepo.AssertNotCalled(s.T(), "SaveBucket", mock.Anything, mock.Anything)
}

func (s *BucketServiceTestSuite) TestCreateBucket_RejectsWorkspaceSumAboveHundred() {
	s.mockRepo.On("FindBucketsByWorkspaceID", s.ctx, s.workspaceID).Return([]domain.Bucket{
		{BucketID: "a", WorkspaceID: s.workspaceID, AllocationPercentage: pct("60")},
		{BucketID: "b", WorkspaceID: s.workspaceID, AllocationPercentage: pct("30")},
	}, nil).Once()

	req := dto.CreateBucketRequest{Name: "Overflow", Type: "SPENDING", AllocationPercentage: pct("20")}
	resp, err := s.service.CreateBucket(s.ctx, s.workspaceID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(resp)
	s.mockRepo.AssertNotCalled(s.T(), "SaveBucket", mock.Anything, mock.Anything)
}

func (s *BucketServiceTestSuite) TestUpdateBucket_PercentageExcludesOwnOldValue() {
	bucket := &domain.Bucket{
		BucketID:             "groceries",
		WorkspaceID:          s.workspaceID,
		Name:                 "Groceries",
		Type:                 domain.Spending,
		AllocationPercentage: pct("50"),
	}
	s.mockRepo.On("FindBucketByID", s.ctx, bucket.BucketID).Return(bucket, nil).Once()
	// Workspace already holds 50 (this bucket) + 40 (another); raising this
	// bucket to 60 is fine because its old 50 is released.
	s.mockRepo.On("FindBucketsByWorkspaceID", s.ctx, s.workspaceID).Return([]domain.Bucket{
		*bucket,
		{BucketID: "other", WorkspaceID: s.workspaceID, AllocationPercentage: pct("40")},
	}, nil).Once()

	var updated domain.Bucket
	s.mockRepo.On("UpdateBucket", s.ctx, mock.AnythingOfType("domain.Bucket")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Bucket)
		}).Return(nil).Once()

	newPct := pct("60")
	resp, err := s.service.UpdateBucket(s.ctx, s.workspaceID, bucket.BucketID, dto.UpdateBucketRequest{AllocationPercentage: &newPct}, s.userID)

	s.Require().NoError(err)
	s.True(pct("60").Equal(updated.AllocationPercentage))
	s.True(pct("60").Equal(resp.AllocationPercentage))
}

func (s *BucketServiceTestSuite) TestGetBucket_HidesForeignWorkspaceBucket() {
	bucket := &domain.Bucket{BucketID: "stray", WorkspaceID: uuid.NewString()}
	s.mockRepo.On("FindBucketByID", s.ctx, "stray").Return(bucket, nil).Once()

	resp, err := s.service.GetBucket(s.ctx, s.workspaceID, "stray", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(resp)
}

func (s *BucketServiceTestSuite) TestListBuckets_AuthorizationFailure() {
	otherWorkspaceID := uuid.NewString()
	s.mockAuthorizer.On("AuthorizeOwner", s.ctx, s.userID, otherWorkspaceID).Return(nil, apperrors.ErrForbidden).Once()

	resp, err := s.service.ListBuckets(s.ctx, otherWorkspaceID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Nil(resp)
	s.mockRepo.AssertNotCalled(s.T(), "FindBucketsByWorkspaceID", mock.Anything, mock.Anything)
}

func (s *BucketServiceTestSuite) TestListBuckets_Success() {
	buckets := []domain.Bucket{
		{BucketID: "a", WorkspaceID: s.workspaceID, Name: "Groceries", AllocationPercentage: pct("60"), CurrentBalance: pct("250")},
		{BucketID: "b", WorkspaceID: s.workspaceID, Name: "Savings", AllocationPercentage: pct("40"), CurrentBalance: pct("750")},
	}
	s.mockRepo.On("FindBucketsByWorkspaceID", s.ctx, s.workspaceID).Return(buckets, nil).Once()

	resp, err := s.service.ListBuckets(s.ctx, s.workspaceID, s.userID)

	s.Require().NoError(err)
	s.Require().Len(resp, 2)
	s.Equal("Groceries", resp[0].Name)
	// Real allocation is derived from the workspace balance of 1000
	s.True(pct("25").Equal(resp[0].RealAllocationPct))
	s.True(pct("75").Equal(resp[1].RealAllocationPct))
}

func TestBucketServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BucketServiceTestSuite))
}
