package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// BoxRepository defines the persistence contract for boxes.
type BoxRepository interface {
	// Add persists a new box and assigns the generated identity to it.
	Add(ctx context.Context, box *pallet.Box) error

	// Update persists the box attributes and its pallet membership.
	Update(ctx context.Context, box *pallet.Box) error

	// Get retrieves a box. A placed box is returned attached to its pallet,
	// which carries all of its boxes.
	Get(ctx context.Context, id kernel.ID) (*pallet.Box, error)

	// GetAll retrieves every box ordered by identity, placed boxes attached to their pallets.
	GetAll(ctx context.Context) ([]*pallet.Box, error)
}
