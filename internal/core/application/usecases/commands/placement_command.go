package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrAddBoxToPalletCommandIsNotConstructed = errors.New(
		"AddBoxToPalletCommand must be created via NewAddBoxToPalletCommand constructor",
	)
	ErrRemoveBoxFromPalletCommandIsNotConstructed = errors.New(
		"RemoveBoxFromPalletCommand must be created via NewRemoveBoxFromPalletCommand constructor",
	)
	ErrPalletIDIsRequired = errs.NewValueIsRequiredError("pallet id")
	ErrBoxIDIsRequired    = errs.NewValueIsRequiredError("box id")
)

// placement names one box and one pallet, both already stored.
type placement struct {
	palletID kernel.ID
	boxID    kernel.ID
}

func newPlacement(palletID, boxID kernel.ID) (placement, error) {
	p := placement{}
	if err := errors.Join(
		p.setPalletID(palletID),
		p.setBoxID(boxID),
	); err != nil {
		return placement{}, err
	}
	return p, nil
}

func (p *placement) setPalletID(id kernel.ID) error {
	if id.IsZero() {
		return ErrPalletIDIsRequired
	}
	p.palletID = id
	return nil
}

func (p *placement) setBoxID(id kernel.ID) error {
	if id.IsZero() {
		return ErrBoxIDIsRequired
	}
	p.boxID = id
	return nil
}

// AddBoxToPalletCommand represents a request to put a stored box on a stored pallet.
//
// Example:
//
//	cmd, err := NewAddBoxToPalletCommand(palletID, boxID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); errs.IsState(err) {
//	    // box does not fit, or stands on another pallet already
//	}
type AddBoxToPalletCommand struct { //nolint:recvcheck //using for validation
	placement

	guard guard.ConstructorGuard
}

// NewAddBoxToPalletCommand creates the command. Both identities are required.
func NewAddBoxToPalletCommand(palletID, boxID kernel.ID) (AddBoxToPalletCommand, error) {
	p, err := newPlacement(palletID, boxID)
	if err != nil {
		return AddBoxToPalletCommand{}, err
	}

	return AddBoxToPalletCommand{placement: p, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddBoxToPalletCommand) Validate() error {
	return c.guard.Validate(ErrAddBoxToPalletCommandIsNotConstructed)
}

// PalletID returns the target pallet.
func (c AddBoxToPalletCommand) PalletID() kernel.ID {
	return c.palletID
}

// BoxID returns the box to place.
func (c AddBoxToPalletCommand) BoxID() kernel.ID {
	return c.boxID
}

// RemoveBoxFromPalletCommand represents a request to take a box off a pallet.
type RemoveBoxFromPalletCommand struct { //nolint:recvcheck //using for validation
	placement

	guard guard.ConstructorGuard
}

// NewRemoveBoxFromPalletCommand creates the command. Both identities are required.
func NewRemoveBoxFromPalletCommand(palletID, boxID kernel.ID) (RemoveBoxFromPalletCommand, error) {
	p, err := newPlacement(palletID, boxID)
	if err != nil {
		return RemoveBoxFromPalletCommand{}, err
	}

	return RemoveBoxFromPalletCommand{placement: p, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveBoxFromPalletCommand) Validate() error {
	return c.guard.Validate(ErrRemoveBoxFromPalletCommandIsNotConstructed)
}

// PalletID returns the pallet to take the box from.
func (c RemoveBoxFromPalletCommand) PalletID() kernel.ID {
	return c.palletID
}

// BoxID returns the box to take off.
func (c RemoveBoxFromPalletCommand) BoxID() kernel.ID {
	return c.boxID
}
