package commands

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// CreatePalletCommandHandler stores a new empty pallet.
type CreatePalletCommandHandler struct {
	uowFactory PalletUoWFactory
}

// NewCreatePalletCommandHandler creates a handler for pallet creation.
func NewCreatePalletCommandHandler(uowFactory PalletUoWFactory) CreatePalletCommandHandler {
	return CreatePalletCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the pallet and returns its generated identity.
func (h *CreatePalletCommandHandler) Handle(ctx context.Context, cmd CreatePalletCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	dimensions := cmd.Dimensions()
	aggregate, err := pallet.NewPallet(dimensions.Width(), dimensions.Height(), dimensions.Depth())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PalletRepository().Add(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return aggregate.ID(), nil
}
