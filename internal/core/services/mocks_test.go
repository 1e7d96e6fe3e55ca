package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bucketly/bucketly_backend/internal/core/domain"
	portsrepo "github.com/bucketly/bucketly_backend/internal/core/ports/repositories"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock WorkspaceRepository ---

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	var ws []domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).([]domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

// --- Mock BucketRepository ---

type MockBucketRepository struct {
	mock.Mock
}

func (m *MockBucketRepository) FindBucketByID(ctx context.Context, bucketID string) (*domain.Bucket, error) {
	args := m.Called(ctx, bucketID)
	var b *domain.Bucket
	if args.Get(0) != nil {
		b = args.Get(0).(*domain.Bucket)
	}
	return b, args.Error(1)
}

func (m *MockBucketRepository) FindBucketsByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.Bucket, error) {
	args := m.Called(ctx, workspaceID)
	var buckets []domain.Bucket
	if args.Get(0) != nil {
		buckets = args.Get(0).([]domain.Bucket)
	}
	return buckets, args.Error(1)
}

func (m *MockBucketRepository) FindDefaultBucket(ctx context.Context, workspaceID string) (*domain.Bucket, error) {
	args := m.Called(ctx, workspaceID)
	var b *domain.Bucket
	if args.Get(0) != nil {
		b = args.Get(0).(*domain.Bucket)
	}
	return b, args.Error(1)
}

func (m *MockBucketRepository) SaveBucket(ctx context.Context, bucket domain.Bucket) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *MockBucketRepository) UpdateBucket(ctx context.Context, bucket domain.Bucket) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByWorkspace(ctx context.Context, workspaceID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, workspaceID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, workspaceDelta decimal.Decimal, bucketDeltas map[string]portsrepo.BucketDelta) error {
	args := m.Called(ctx, txn, workspaceDelta, bucketDeltas)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, workspaceDelta decimal.Decimal, bucketDeltas map[string]portsrepo.BucketDelta) error {
	args := m.Called(ctx, txn, workspaceDelta, bucketDeltas)
	return args.Error(0)
}

// --- Mock WorkspaceAuthorizer ---

type MockWorkspaceAuthorizer struct {
	mock.Mock
}

func (m *MockWorkspaceAuthorizer) AuthorizeOwner(ctx context.Context, userID, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, userID, workspaceID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}
