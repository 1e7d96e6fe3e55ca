package services

import (
	portsrepo "github.com/bucketly/bucketly_backend/internal/core/ports/repositories"
	portssvc "github.com/bucketly/bucketly_backend/internal/core/ports/services"
	"github.com/bucketly/bucketly_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Workspace service goes first since bucket and transaction services
	// depend on its owner checks.
	container.Workspace = NewWorkspaceService(repos.WorkspaceRepo)

	container.Bucket = NewBucketService(repos.BucketRepo, container.Workspace)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.BucketRepo, container.Workspace)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}
