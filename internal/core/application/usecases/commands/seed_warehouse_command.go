package commands

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrSeedWarehouseCommandIsNotConstructed = errors.New(
		"SeedWarehouseCommand must be created via NewSeedWarehouseCommand constructor",
	)
	ErrSeedKeyIsRequired = errs.NewValueIsRequiredError("seed key")
)

// SeedBox describes one box of a seed dataset. Key is local to the dataset and
// only used to reference the box from SeedPallet.BoxKeys.
type SeedBox struct {
	Key            string
	Width          uint32
	Height         uint32
	Depth          uint32
	Weight         uint32
	ProductionDate *kernel.Date
	ExpireDate     *kernel.Date
}

// SeedPallet describes one pallet of a seed dataset and the boxes placed on it, in order.
type SeedPallet struct {
	Key     string
	Width   uint32
	Height  uint32
	Depth   uint32
	BoxKeys []string
}

// SeedDataset is a complete warehouse content created in a single transaction.
type SeedDataset struct {
	Boxes   []SeedBox
	Pallets []SeedPallet
}

// SeedResult maps dataset keys to the identities generated while seeding.
type SeedResult struct {
	BoxIDs    map[string]kernel.ID
	PalletIDs map[string]kernel.ID
}

// SeedWarehouseCommand represents a request to populate the warehouse with a dataset.
// The dataset is checked for referential consistency here; physical and temporal rules
// are enforced by the domain while the handler builds the entities.
type SeedWarehouseCommand struct { //nolint:recvcheck //using for validation
	dataset SeedDataset

	guard guard.ConstructorGuard
}

// NewSeedWarehouseCommand creates the command. Keys must be present and unique per kind,
// and every box key used by a pallet must name a box of the dataset.
func NewSeedWarehouseCommand(dataset SeedDataset) (SeedWarehouseCommand, error) {
	cmd := SeedWarehouseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDataset(dataset); err != nil {
		return SeedWarehouseCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SeedWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrSeedWarehouseCommandIsNotConstructed)
}

// Dataset returns the dataset to seed.
func (c SeedWarehouseCommand) Dataset() SeedDataset {
	return c.dataset
}

func (c *SeedWarehouseCommand) setDataset(dataset SeedDataset) error {
	var problems []error

	boxKeys := make(map[string]struct{}, len(dataset.Boxes))
	for i, box := range dataset.Boxes {
		switch _, seen := boxKeys[box.Key]; {
		case box.Key == "":
			problems = append(problems, fmt.Errorf("box #%d: %w", i, ErrSeedKeyIsRequired))
		case seen:
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("box key",
				fmt.Errorf("duplicate key %q", box.Key)))
		}
		boxKeys[box.Key] = struct{}{}
	}

	palletKeys := make(map[string]struct{}, len(dataset.Pallets))
	for i, p := range dataset.Pallets {
		switch _, seen := palletKeys[p.Key]; {
		case p.Key == "":
			problems = append(problems, fmt.Errorf("pallet #%d: %w", i, ErrSeedKeyIsRequired))
		case seen:
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("pallet key",
				fmt.Errorf("duplicate key %q", p.Key)))
		}
		palletKeys[p.Key] = struct{}{}

		for _, boxKey := range p.BoxKeys {
			if _, ok := boxKeys[boxKey]; !ok {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause("pallet box key",
					fmt.Errorf("pallet %q references unknown box %q", p.Key, boxKey)))
			}
		}
	}

	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.dataset = dataset
	return nil
}
