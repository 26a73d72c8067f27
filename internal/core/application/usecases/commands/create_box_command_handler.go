package commands

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// CreateBoxCommandHandler stores a new box that stands on no pallet.
type CreateBoxCommandHandler struct {
	uowFactory BoxUoWFactory
}

// NewCreateBoxCommandHandler creates a handler for box creation.
func NewCreateBoxCommandHandler(uowFactory BoxUoWFactory) CreateBoxCommandHandler {
	return CreateBoxCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the box and returns its generated identity.
// Date rules (expire strictly after production, default shelf life) are applied
// before any transaction is opened.
func (h *CreateBoxCommandHandler) Handle(ctx context.Context, cmd CreateBoxCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	dimensions := cmd.Dimensions()
	box, err := pallet.NewBox(
		dimensions.Width(), dimensions.Height(), dimensions.Depth(),
		cmd.Weight(), cmd.ProductionDate(), cmd.ExpireDate(),
	)
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

	if err = uow.BoxRepository().Add(ctx, box); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return box.ID(), nil
}
