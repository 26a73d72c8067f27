// Package ports defines the persistence contracts of the warehouse domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// PalletRepository defines the persistence contract for pallet aggregates.
// Pallets are always loaded together with their boxes.
type PalletRepository interface {
	// Add persists a new pallet and assigns the generated identity to it.
	// Boxes already on the pallet must be stored before and are linked to it.
	Add(ctx context.Context, aggregate *pallet.Pallet) error

	// Update persists the pallet and its membership: contained boxes point to it,
	// boxes removed since loading are detached.
	Update(ctx context.Context, aggregate *pallet.Pallet) error

	// Get retrieves a pallet with all its boxes.
	// Returns errs.ObjectNotFoundError when no pallet has the identity.
	Get(ctx context.Context, id kernel.ID) (*pallet.Pallet, error)

	// GetAll loads the snapshot used by the reports: every pallet ordered by identity,
	// each with its boxes populated and pointing back to it.
	//
	// Example:
	//   pallets, err := repo.GetAll(ctx)
	//   if err != nil {
	//       return fmt.Errorf("failed to load pallets: %w", err)
	//   }
	//   for expire, group := range analyzer.GroupPalletsByExpiration(pallets) {
	//       fmt.Println(expire, len(group))
	//   }
	GetAll(ctx context.Context) ([]*pallet.Pallet, error)
}
