package commands

import (
	"context"
)

// AddBoxToPalletCommandHandler places a stored box on a stored pallet.
//
// Example:
//
//	handler := NewAddBoxToPalletCommandHandler(uowFactory)
//	cmd, _ := NewAddBoxToPalletCommand(7, 42)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("placement failed: %w", err)
//	}
type AddBoxToPalletCommandHandler struct {
	uowFactory UoWFactory
}

// NewAddBoxToPalletCommandHandler creates a handler for box placement.
func NewAddBoxToPalletCommandHandler(uowFactory UoWFactory) AddBoxToPalletCommandHandler {
	return AddBoxToPalletCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the pallet and the box, applies the placement rules of the pallet and
// saves its membership. A rejected placement leaves the stored state untouched.
func (h *AddBoxToPalletCommandHandler) Handle(ctx context.Context, cmd AddBoxToPalletCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	palletRepo := uow.PalletRepository()
	aggregate, err := palletRepo.Get(ctx, cmd.PalletID())
	if err != nil {
		return err
	}

	box, err := uow.BoxRepository().Get(ctx, cmd.BoxID())
	if err != nil {
		return err
	}

	if err = aggregate.AddBox(box); err != nil {
		return err
	}

	if err = palletRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
