package queries

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/guard"
)

var ErrGetAllBoxesQueryIsNotConstructed = errors.New(
	"GetAllBoxesQuery must be created via NewGetAllBoxesQuery constructor",
)

// GetAllBoxesQuery lists every box, placed or not, ordered by identity.
type GetAllBoxesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllBoxesQuery creates the query.
func NewGetAllBoxesQuery() GetAllBoxesQuery {
	return GetAllBoxesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllBoxesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllBoxesQueryIsNotConstructed)
}

// BoxSummary is the read model of one box. PalletID is nil for an unplaced box.
type BoxSummary struct {
	ID             kernel.ID
	Width          uint32
	Height         uint32
	Depth          uint32
	Weight         uint64
	Volume         uint64
	ProductionDate *kernel.Date
	ExpireDate     kernel.Date
	PalletID       *kernel.ID
}

// GetAllBoxesQueryHandler lists boxes.
type GetAllBoxesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGetAllBoxesQueryHandler creates the handler.
func NewGetAllBoxesQueryHandler(uowFactory ports.UnitOfWorkFactory) GetAllBoxesQueryHandler {
	return GetAllBoxesQueryHandler{uowFactory: uowFactory}
}

// Handle returns every box.
func (h GetAllBoxesQueryHandler) Handle(ctx context.Context, query GetAllBoxesQuery) ([]BoxSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer().Start(ctx, "GetAllBoxes")
	defer span.End()

	result := make([]BoxSummary, 0)
	err := readSnapshot(ctx, h.uowFactory, func(uow ports.UnitOfWork) error {
		boxes, err := uow.BoxRepository().GetAll(ctx)
		if err != nil {
			return err
		}

		for _, box := range boxes {
			result = append(result, BoxSummary{
				ID:             box.ID(),
				Width:          box.Width(),
				Height:         box.Height(),
				Depth:          box.Depth(),
				Weight:         box.Weight(),
				Volume:         box.Volume(),
				ProductionDate: box.ProductionDate(),
				ExpireDate:     box.ExpireDate(),
				PalletID:       box.PalletID(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}

	span.SetAttributes(attribute.Int("warehouse.boxes", len(result)))
	return result, nil
}
