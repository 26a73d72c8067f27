package commands

import (
	"context"
)

// RemoveBoxFromPalletCommandHandler takes a box off a pallet.
type RemoveBoxFromPalletCommandHandler struct {
	uowFactory UoWFactory
}

// NewRemoveBoxFromPalletCommandHandler creates a handler for box removal.
func NewRemoveBoxFromPalletCommandHandler(uowFactory UoWFactory) RemoveBoxFromPalletCommandHandler {
	return RemoveBoxFromPalletCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the box from the pallet. Both must exist; a box that is not on
// the pallet is left alone and nothing is written.
func (h *RemoveBoxFromPalletCommandHandler) Handle(ctx context.Context, cmd RemoveBoxFromPalletCommand) error {
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

	if !aggregate.Contains(box) {
		return nil
	}

	aggregate.RemoveBox(box)
	if err = palletRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
