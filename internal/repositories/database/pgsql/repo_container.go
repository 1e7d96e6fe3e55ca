package pgsql

import (
	portsrepo "github.com/bucketly/bucketly_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		WorkspaceRepo:   newPgxWorkspaceRepository(dbPool),
		BucketRepo:      newPgxBucketRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
	}
}
