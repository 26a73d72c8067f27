// Package commands contains business operations that modify warehouse state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PalletRepoFactory provides access to pallet repository within a transaction.
	PalletRepoFactory interface {
		PalletRepository() ports.PalletRepository
	}

	// BoxRepoFactory provides access to box repository within a transaction.
	BoxRepoFactory interface {
		BoxRepository() ports.BoxRepository
	}

	// PalletUoW manages transactions for pallet-only operations.
	PalletUoW interface {
		TxManager
		PalletRepoFactory
	}

	// PalletUoWFactory creates new pallet unit of work instances.
	PalletUoWFactory interface {
		Create() PalletUoW
	}

	// BoxUoW manages transactions for box-only operations.
	BoxUoW interface {
		TxManager
		BoxRepoFactory
	}

	// BoxUoWFactory creates new box unit of work instances.
	BoxUoWFactory interface {
		Create() BoxUoW
	}

	// UoW manages transactions across pallets and boxes.
	// Both repositories share one identity map, so a box loaded on its own and
	// the same box reached through its pallet are one object.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   palletRepo := uow.PalletRepository()
	//   boxRepo := uow.BoxRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		PalletRepoFactory
		BoxRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
