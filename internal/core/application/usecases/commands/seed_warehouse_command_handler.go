package commands

import (
	"context"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// SeedWarehouseCommandHandler creates a whole dataset atomically: boxes first, then
// pallets with their boxes placed. Any failure rolls back everything, so the warehouse
// is either fully seeded or left as it was.
type SeedWarehouseCommandHandler struct {
	uowFactory UoWFactory
}

// NewSeedWarehouseCommandHandler creates a handler for seeding.
func NewSeedWarehouseCommandHandler(uowFactory UoWFactory) SeedWarehouseCommandHandler {
	return SeedWarehouseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle seeds the dataset and returns the generated identities by dataset key.
func (h *SeedWarehouseCommandHandler) Handle(ctx context.Context, cmd SeedWarehouseCommand) (SeedResult, error) {
	if err := cmd.Validate(); err != nil {
		return SeedResult{}, err
	}

	dataset := cmd.Dataset()
	result := SeedResult{
		BoxIDs:    make(map[string]kernel.ID, len(dataset.Boxes)),
		PalletIDs: make(map[string]kernel.ID, len(dataset.Pallets)),
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SeedResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	boxRepo := uow.BoxRepository()
	boxes := make(map[string]*pallet.Box, len(dataset.Boxes))
	for _, seed := range dataset.Boxes {
		box, err := pallet.NewBox(seed.Width, seed.Height, seed.Depth, seed.Weight,
			seed.ProductionDate, seed.ExpireDate)
		if err != nil {
			return SeedResult{}, fmt.Errorf("box %q: %w", seed.Key, err)
		}

		if err = boxRepo.Add(ctx, box); err != nil {
			return SeedResult{}, fmt.Errorf("box %q: %w", seed.Key, err)
		}

		boxes[seed.Key] = box
		result.BoxIDs[seed.Key] = box.ID()
	}

	palletRepo := uow.PalletRepository()
	for _, seed := range dataset.Pallets {
		aggregate, err := pallet.NewPallet(seed.Width, seed.Height, seed.Depth)
		if err != nil {
			return SeedResult{}, fmt.Errorf("pallet %q: %w", seed.Key, err)
		}

		for _, boxKey := range seed.BoxKeys {
			if err = aggregate.AddBox(boxes[boxKey]); err != nil {
				return SeedResult{}, fmt.Errorf("pallet %q, box %q: %w", seed.Key, boxKey, err)
			}
		}

		if err = palletRepo.Add(ctx, aggregate); err != nil {
			return SeedResult{}, fmt.Errorf("pallet %q: %w", seed.Key, err)
		}

		result.PalletIDs[seed.Key] = aggregate.ID()
	}

	if err := uow.Commit(ctx); err != nil {
		return SeedResult{}, err
	}

	return result, nil
}
