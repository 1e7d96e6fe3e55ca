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
	portsrepo "github.com/bucketly/bucketly_backend/internal/core/ports/repositories"
	portssvc "github.com/bucketly/bucketly_backend/internal/core/ports/services"
	"github.com/bucketly/bucketly_backend/internal/core/services"
	"github.com/bucketly/bucketly_backend/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo    *MockTransactionRepository
	mockBucketRepo *MockBucketRepository
	mockAuthorizer *MockWorkspaceAuthorizer
	service        portssvc.TransactionSvcFacade

	ctx         context.Context
	userID      string
	workspaceID string
	workspace   *domain.Workspace
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockBucketRepo = new(MockBucketRepository)
	s.mockAuthorizer = new(MockWorkspaceAuthorizer)
	s.service = services.NewTransactionService(s.mockTxnRepo, s.mockBucketRepo, s.mockAuthorizer)

	s.ctx = context.Background()
	s.userID = uuid.NewString()
	s.workspaceID = uuid.NewString()
	s.workspace = &domain.Workspace{
		WorkspaceID:  s.workspaceID,
		UserID:       s.userID,
		Name:         "Personal",
		Currency:     domain.CurrencyBRL,
		TotalBalance: decimal.NewFromInt(500),
	}
}

func (s *TransactionServiceTestSuite) expectAuthorized() {
	s.mockAuthorizer.On("AuthorizeOwner", s.ctx, s.userID, s.workspaceID).Return(s.workspace, nil)
}

func amt(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// --- CreateTransaction: validation ---

func (s *TransactionServiceTestSuite) TestCreateTransaction_AuthorizationFailure() {
	s.mockAuthorizer.On("AuthorizeOwner", s.ctx, s.userID, s.workspaceID).Return(nil, apperrors.ErrForbidden)

	req := dto.CreateTransactionRequest{Amount: amt("100"), Type: "INCOME", Description: "salary"}
	txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Nil(txn)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	s.expectAuthorized()

	for _, amount := range []string{"0", "-10"} {
		req := dto.CreateTransactionRequest{Amount: amt(amount), Type: "INCOME", Description: "bad"}
		txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

		s.Require().Error(err, "amount %s should be rejected", amount)
		s.ErrorIs(err, apperrors.ErrValidation)
		s.ErrorIs(err, services.ErrAmountNotPositive)
		s.Nil(txn)
	}
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_ExpenseRequiresBucket() {
	s.expectAuthorized()

	req := dto.CreateTransactionRequest{Amount: amt("25"), Type: "EXPENSE", Description: "groceries"}
	txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrExpenseNeedsBucket)
	s.Nil(txn)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_ExpenseCannotBeAllocated() {
	s.expectAuthorized()
	bucketID := uuid.NewString()

	req := dto.CreateTransactionRequest{BucketID: &bucketID, Amount: amt("25"), Type: "EXPENSE", Description: "groceries", IsAllocated: true}
	txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrExpenseAllocated)
	s.Nil(txn)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_BucketFromAnotherWorkspace() {
	s.expectAuthorized()
	bucketID := uuid.NewString()
	foreignBucket := &domain.Bucket{BucketID: bucketID, WorkspaceID: uuid.NewString()}

	s.mockBucketRepo.On("FindBucketByID", s.ctx, bucketID).Return(foreignBucket, nil).Once()

	req := dto.CreateTransactionRequest{BucketID: &bucketID, Amount: amt("25"), Type: "EXPENSE", Description: "groceries"}
	txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(txn)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- CreateTransaction: deltas ---

func (s *TransactionServiceTestSuite) TestCreateTransaction_ExpenseDeltas() {
	s.expectAuthorized()
	bucketID := uuid.NewString()
	bucket := &domain.Bucket{BucketID: bucketID, WorkspaceID: s.workspaceID}

	s.mockBucketRepo.On("FindBucketByID", s.ctx, bucketID).Return(bucket, nil).Once()

	var gotWorkspaceDelta decimal.Decimal
	var gotBucketDeltas map[string]portsrepo.BucketDelta
	s.mockTxnRepo.On("SaveTransaction", s.ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotWorkspaceDelta = args.Get(2).(decimal.Decimal)
			gotBucketDeltas = args.Get(3).(map[string]portsrepo.BucketDelta)
		}).Return(nil).Once()

	req := dto.CreateTransactionRequest{BucketID: &bucketID, Amount: amt("40"), Type: "EXPENSE", Description: "groceries"}
	txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.Equal(domain.Expense, txn.Type)
	s.NotEmpty(txn.TransactionID)

	s.True(amt("-40").Equal(gotWorkspaceDelta))
	delta := gotBucketDeltas[bucketID]
	s.True(amt("-40").Equal(delta.Balance))
	s.True(amt("40").Equal(delta.Spent))
	s.True(delta.Allocated.IsZero())
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_DirectCreditIncome() {
	s.expectAuthorized()
	bucketID := uuid.NewString()
	bucket := &domain.Bucket{BucketID: bucketID, WorkspaceID: s.workspaceID}

	s.mockBucketRepo.On("FindBucketByID", s.ctx, bucketID).Return(bucket, nil).Once()

	var gotWorkspaceDelta decimal.Decimal
	var gotBucketDeltas map[string]portsrepo.BucketDelta
	s.mockTxnRepo.On("SaveTransaction", s.ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotWorkspaceDelta = args.Get(2).(decimal.Decimal)
			gotBucketDeltas = args.Get(3).(map[string]portsrepo.BucketDelta)
		}).Return(nil).Once()

	req := dto.CreateTransactionRequest{BucketID: &bucketID, Amount: amt("150"), Type: "INCOME", Description: "bonus"}
	txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

	s.Require().NoError(err)
	s.True(amt("150").Equal(gotWorkspaceDelta))
	delta := gotBucketDeltas[bucketID]
	s.True(amt("150").Equal(delta.Balance))
	s.True(amt("150").Equal(delta.Allocated))
	s.True(delta.Spent.IsZero())
	s.Equal(&bucketID, txn.BucketID)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_AllocatedIncomeSplit() {
	s.expectAuthorized()
	buckets := []domain.Bucket{
		{BucketID: "groceries", WorkspaceID: s.workspaceID, AllocationPercentage: amt("60")},
		{BucketID: "savings", WorkspaceID: s.workspaceID, AllocationPercentage: amt("20"), IsDefault: true},
	}
	s.mockBucketRepo.On("FindBucketsByWorkspaceID", s.ctx, s.workspaceID).Return(buckets, nil).Once()

	var gotWorkspaceDelta decimal.Decimal
	var gotBucketDeltas map[string]portsrepo.BucketDelta
	s.mockTxnRepo.On("SaveTransaction", s.ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotWorkspaceDelta = args.Get(2).(decimal.Decimal)
			gotBucketDeltas = args.Get(3).(map[string]portsrepo.BucketDelta)
		}).Return(nil).Once()

	req := dto.CreateTransactionRequest{Amount: amt("1000"), Type: "INCOME", Description: "salary", IsAllocated: true}
	txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

	s.Require().NoError(err)
	s.True(txn.IsAllocated)
	s.True(amt("1000").Equal(gotWorkspaceDelta))

	s.True(amt("600").Equal(gotBucketDeltas["groceries"].Balance))
	// Own 20% share plus the 20% remainder routed to the default bucket
	s.True(amt("400").Equal(gotBucketDeltas["savings"].Balance))
	s.True(amt("400").Equal(gotBucketDeltas["savings"].Allocated))
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_DefaultFallbackIncome() {
	s.expectAuthorized()
	defaultBucket := &domain.Bucket{BucketID: uuid.NewString(), WorkspaceID: s.workspaceID, IsDefault: true}
	s.mockBucketRepo.On("FindDefaultBucket", s.ctx, s.workspaceID).Return(defaultBucket, nil).Once()

	var gotTxn domain.Transaction
	var gotBucketDeltas map[string]portsrepo.BucketDelta
	s.mockTxnRepo.On("SaveTransaction", s.ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotTxn = args.Get(1).(domain.Transaction)
			gotBucketDeltas = args.Get(3).(map[string]portsrepo.BucketDelta)
		}).Return(nil).Once()

	req := dto.CreateTransactionRequest{Amount: amt("80"), Type: "INCOME", Description: "refund"}
	txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

	s.Require().NoError(err)
	// The transaction is re-pointed at the default bucket
	s.Require().NotNil(txn.BucketID)
	s.Equal(defaultBucket.BucketID, *txn.BucketID)
	s.Equal(defaultBucket.BucketID, *gotTxn.BucketID)
	s.True(amt("80").Equal(gotBucketDeltas[defaultBucket.BucketID].Balance))
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_NoDefaultBucketLeavesIncomeUnbucketed() {
	s.expectAuthorized()
	s.mockBucketRepo.On("FindDefaultBucket", s.ctx, s.workspaceID).Return(nil, apperrors.ErrNotFound).Once()

	var gotWorkspaceDelta decimal.Decimal
	var gotBucketDeltas map[string]portsrepo.BucketDelta
	s.mockTxnRepo.On("SaveTransaction", s.ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotWorkspaceDelta = args.Get(2).(decimal.Decimal)
			gotBucketDeltas = args.Get(3).(map[string]portsrepo.BucketDelta)
		}).Return(nil).Once()

	req := dto.CreateTransactionRequest{Amount: amt("80"), Type: "INCOME", Description: "refund"}
	txn, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)

	s.Require().NoError(err)
	s.Nil(txn.BucketID)
	s.True(amt("80").Equal(gotWorkspaceDelta))
	s.Empty(gotBucketDeltas)
}

// --- DeleteTransaction: reversal ---

func (s *TransactionServiceTestSuite) TestDeleteTransaction_ReversesExpenseExactly() {
	s.expectAuthorized()
	bucketID := uuid.NewString()
	txnID := uuid.NewString()
	stored := &domain.Transaction{
		TransactionID: txnID,
		WorkspaceID:   s.workspaceID,
		BucketID:      &bucketID,
		Amount:        amt("40"),
		Type:          domain.Expense,
	}
	s.mockTxnRepo.On("FindTransactionByID", s.ctx, txnID).Return(stored, nil).Once()

	var gotWorkspaceDelta decimal.Decimal
	var gotBucketDeltas map[string]portsrepo.BucketDelta
	s.mockTxnRepo.On("DeleteTransaction", s.ctx, *stored, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotWorkspaceDelta = args.Get(2).(decimal.Decimal)
			gotBucketDeltas = args.Get(3).(map[string]portsrepo.BucketDelta)
		}).Return(nil).Once()

	err := s.service.DeleteTransaction(s.ctx, s.workspaceID, txnID, s.userID)

	s.Require().NoError(err)
	s.True(amt("40").Equal(gotWorkspaceDelta))
	delta := gotBucketDeltas[bucketID]
	s.True(amt("40").Equal(delta.Balance))
	s.True(amt("-40").Equal(delta.Spent))
}

func (s *TransactionServiceTestSuite) TestDeleteTransaction_AllocatedIncomeRoundTripCancelsOut() {
	buckets := []domain.Bucket{
		{BucketID: "a", WorkspaceID: s.workspaceID, AllocationPercentage: amt("33.33")},
		{BucketID: "b", WorkspaceID: s.workspaceID, AllocationPercentage: amt("33.33")},
		{BucketID: "c", WorkspaceID: s.workspaceID, AllocationPercentage: amt("13.34"), IsDefault: true},
	}
	s.expectAuthorized()
	s.mockBucketRepo.On("FindBucketsByWorkspaceID", s.ctx, s.workspaceID).Return(buckets, nil)

	var createDeltas, deleteDeltas map[string]portsrepo.BucketDelta
	var createdTxn domain.Transaction
	s.mockTxnRepo.On("SaveTransaction", s.ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			createdTxn = args.Get(1).(domain.Transaction)
			createDeltas = args.Get(3).(map[string]portsrepo.BucketDelta)
		}).Return(nil).Once()

	req := dto.CreateTransactionRequest{Amount: amt("997"), Type: "INCOME", Description: "salary", IsAllocated: true}
	_, err := s.service.CreateTransaction(s.ctx, s.workspaceID, req, s.userID)
	s.Require().NoError(err)

	s.mockTxnRepo.On("FindTransactionByID", s.ctx, createdTxn.TransactionID).Return(&createdTxn, nil).Once()
	s.mockTxnRepo.On("DeleteTransaction", s.ctx, createdTxn, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			deleteDeltas = args.Get(3).(map[string]portsrepo.BucketDelta)
		}).Return(nil).Once()

	err = s.service.DeleteTransaction(s.ctx, s.workspaceID, createdTxn.TransactionID, s.userID)
	s.Require().NoError(err)

	// While percentages are unchanged the reversal is the exact negation,
	// including the rounding residue routed to the default bucket.
	s.Require().Len(deleteDeltas, len(createDeltas))
	for bucketID, created := range createDeltas {
		net := created.Add(deleteDeltas[bucketID])
		s.True(net.IsZero(), "net delta for bucket %s should be zero, got %+v", bucketID, net)
	}
}

func (s *TransactionServiceTestSuite) TestDeleteTransaction_OtherWorkspaceObscured() {
	txnID := uuid.NewString()
	stored := &domain.Transaction{
		TransactionID: txnID,
		WorkspaceID:   uuid.NewString(),
		Amount:        amt("10"),
		Type:          domain.Income,
	}
	s.mockTxnRepo.On("FindTransactionByID", s.ctx, txnID).Return(stored, nil).Once()

	err := s.service.DeleteTransaction(s.ctx, s.workspaceID, txnID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockTxnRepo.AssertNotCalled(s.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ListTransactions ---

func (s *TransactionServiceTestSuite) TestListTransactions_DefaultsLimit() {
	s.expectAuthorized()
	txns := []domain.Transaction{{TransactionID: uuid.NewString(), WorkspaceID: s.workspaceID, Amount: amt("5"), Type: domain.Income}}
	s.mockTxnRepo.On("ListTransactionsByWorkspace", s.ctx, s.workspaceID, 20, (*string)(nil)).Return(txns, nil, nil).Once()

	resp, err := s.service.ListTransactions(s.ctx, s.workspaceID, s.userID, dto.ListTransactionsParams{})

	s.Require().NoError(err)
	s.Len(resp.Transactions, 1)
	s.Nil(resp.NextToken)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
