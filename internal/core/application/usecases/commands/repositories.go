// Package commands contains business operations that modify job state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every status write runs in its own unit of work and is committed before
// the handler moves on.
package commands

import (
	"context"

	"optiroute/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// JobUoW manages transactions for job operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.JobRepository().Update(ctx, j)
	//   err = uow.Commit(ctx)
	JobUoW interface {
		TxManager
		JobRepoFactory
	}

	// JobUoWFactory creates a fresh unit of work per store interaction.
	JobUoWFactory interface {
		Create() JobUoW
	}
)
