package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
	"warehouse/internal/pkg/guard"
)

var ErrCreateBoxCommandIsNotConstructed = errors.New(
	"CreateBoxCommand must be created via NewCreateBoxCommand constructor",
)

// CreateBoxCommand represents a request to register an unplaced box.
// At least one of the dates is required; the expire date itself is resolved
// by the box when the handler builds it.
type CreateBoxCommand struct { //nolint:recvcheck //using for validation
	dimensions     kernel.Dimensions
	weight         uint32
	productionDate *kernel.Date
	expireDate     *kernel.Date

	guard guard.ConstructorGuard
}

// NewCreateBoxCommand creates a command for a box of the given size (cm) and weight (g).
func NewCreateBoxCommand(
	width, height, depth, weight uint32,
	productionDate, expireDate *kernel.Date,
) (CreateBoxCommand, error) {
	cmd := CreateBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDimensions(width, height, depth),
		cmd.setWeight(weight),
		cmd.setDates(productionDate, expireDate),
	); err != nil {
		return CreateBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBoxCommand) Validate() error {
	return c.guard.Validate(ErrCreateBoxCommandIsNotConstructed)
}

// Dimensions returns the box size.
func (c CreateBoxCommand) Dimensions() kernel.Dimensions {
	return c.dimensions
}

// Weight returns the box weight in grams.
func (c CreateBoxCommand) Weight() uint32 {
	return c.weight
}

// ProductionDate returns the optional production date.
func (c CreateBoxCommand) ProductionDate() *kernel.Date {
	return c.productionDate
}

// ExpireDate returns the optional explicit expire date.
func (c CreateBoxCommand) ExpireDate() *kernel.Date {
	return c.expireDate
}

func (c *CreateBoxCommand) setDimensions(width, height, depth uint32) error {
	dimensions, err := kernel.NewDimensions(width, height, depth)
	if err != nil {
		return err
	}

	c.dimensions = dimensions
	return nil
}

func (c *CreateBoxCommand) setWeight(weight uint32) error {
	if weight == 0 {
		return pallet.ErrWeightIsRequired
	}

	c.weight = weight
	return nil
}

func (c *CreateBoxCommand) setDates(productionDate, expireDate *kernel.Date) error {
	if productionDate == nil && expireDate == nil {
		return pallet.ErrExpireDateIsRequired
	}

	c.productionDate = productionDate
	c.expireDate = expireDate
	return nil
}
