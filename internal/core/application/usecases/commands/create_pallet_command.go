package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCreatePalletCommandIsNotConstructed = errors.New(
	"CreatePalletCommand must be created via NewCreatePalletCommand constructor",
)

// CreatePalletCommand represents a request to register an empty pallet.
//
// Example:
//
//	cmd, err := NewCreatePalletCommand(120, 15, 80)
//	if err != nil {
//	    return fmt.Errorf("invalid pallet data: %w", err)
//	}
//
//	handler := NewCreatePalletCommandHandler(uowFactory)
//	id, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create pallet: %w", err)
//	}
//	fmt.Printf("Pallet %d created", id)
type CreatePalletCommand struct { //nolint:recvcheck //using for validation
	dimensions kernel.Dimensions

	guard guard.ConstructorGuard
}

// NewCreatePalletCommand creates a command for a pallet of the given size in centimetres.
// Every zero measure is reported.
func NewCreatePalletCommand(width, height, depth uint32) (CreatePalletCommand, error) {
	cmd := CreatePalletCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDimensions(width, height, depth); err != nil {
		return CreatePalletCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePalletCommand) Validate() error {
	return c.guard.Validate(ErrCreatePalletCommandIsNotConstructed)
}

// Dimensions returns the requested pallet size.
func (c CreatePalletCommand) Dimensions() kernel.Dimensions {
	return c.dimensions
}

func (c *CreatePalletCommand) setDimensions(width, height, depth uint32) error {
	dimensions, err := kernel.NewDimensions(width, height, depth)
	if err != nil {
		return err
	}

	c.dimensions = dimensions
	return nil
}
