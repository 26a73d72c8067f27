package queries

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/guard"
)

var ErrGetPalletsGroupedByExpirationQueryIsNotConstructed = errors.New(
	"GetPalletsGroupedByExpirationQuery must be created via NewGetPalletsGroupedByExpirationQuery constructor",
)

// GetPalletsGroupedByExpirationQuery groups every pallet by its expire date.
// Groups come in ascending date order, pallets inside a group in ascending weight.
//
// Example:
//
//	query := NewGetPalletsGroupedByExpirationQuery()
//	groups, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to group pallets: %w", err)
//	}
//	for _, group := range groups {
//	    fmt.Println("Expires:", group.ExpireDate)
//	    for _, p := range group.Pallets {
//	        fmt.Printf("  Pallet %d, weight: %d g\n", p.ID, p.Weight)
//	    }
//	}
type GetPalletsGroupedByExpirationQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPalletsGroupedByExpirationQuery creates the query.
func NewGetPalletsGroupedByExpirationQuery() GetPalletsGroupedByExpirationQuery {
	return GetPalletsGroupedByExpirationQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPalletsGroupedByExpirationQuery) Validate() error {
	return q.guard.Validate(ErrGetPalletsGroupedByExpirationQueryIsNotConstructed)
}

// PalletSummary is the read model of one pallet. Weight is in grams, Volume in cm³.
// ExpireDate is kernel.MaxDate for an empty pallet.
type PalletSummary struct {
	ID         kernel.ID
	Width      uint32
	Height     uint32
	Depth      uint32
	Weight     uint64
	Volume     uint64
	BoxCount   int
	ExpireDate kernel.Date
}

// ExpirationGroup is one group of the grouped report.
type ExpirationGroup struct {
	ExpireDate kernel.Date
	Pallets    []PalletSummary
}

func summarizePallet(p *pallet.Pallet) PalletSummary {
	return PalletSummary{
		ID:         p.ID(),
		Width:      p.Width(),
		Height:     p.Height(),
		Depth:      p.Depth(),
		Weight:     p.Weight(),
		Volume:     p.Volume(),
		BoxCount:   p.BoxCount(),
		ExpireDate: p.ExpireDate(),
	}
}

// GetPalletsGroupedByExpirationQueryHandler builds the grouped report from the full pallet snapshot.
type GetPalletsGroupedByExpirationQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	analyzer   services.ShelfLifeAnalyzer
}

// NewGetPalletsGroupedByExpirationQueryHandler creates the handler.
func NewGetPalletsGroupedByExpirationQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
) GetPalletsGroupedByExpirationQueryHandler {
	return GetPalletsGroupedByExpirationQueryHandler{
		uowFactory: uowFactory,
		analyzer:   services.NewShelfLifeAnalyzer(),
	}
}

// Handle returns the groups. An empty warehouse yields an empty, non-nil slice.
func (h GetPalletsGroupedByExpirationQueryHandler) Handle(
	ctx context.Context,
	query GetPalletsGroupedByExpirationQuery,
) ([]ExpirationGroup, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer().Start(ctx, "GetPalletsGroupedByExpiration")
	defer span.End()

	groups := make([]ExpirationGroup, 0)
	err := readSnapshot(ctx, h.uowFactory, func(uow ports.UnitOfWork) error {
		pallets, err := uow.PalletRepository().GetAll(ctx)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.Int("warehouse.pallets", len(pallets)))

		for expireDate, group := range h.analyzer.GroupPalletsByExpiration(pallets) {
			summaries := make([]PalletSummary, 0, len(group))
			for _, p := range group {
				summaries = append(summaries, summarizePallet(p))
			}
			groups = append(groups, ExpirationGroup{ExpireDate: expireDate, Pallets: summaries})
		}
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}

	span.SetAttributes(attribute.Int("warehouse.groups", len(groups)))
	return groups, nil
}
