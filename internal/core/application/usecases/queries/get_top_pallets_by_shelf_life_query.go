package queries

import (
	"context"
	"errors"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrGetTopPalletsByShelfLifeQueryIsNotConstructed = errors.New(
	"GetTopPalletsByShelfLifeQuery must be created via NewGetTopPalletsByShelfLifeQuery constructor",
)

// GetTopPalletsByShelfLifeQuery selects the non-empty pallets whose latest box expires
// last, at most Limit of them, ordered by ascending volume.
type GetTopPalletsByShelfLifeQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetTopPalletsByShelfLifeQuery creates the query. A zero limit is allowed and
// selects nothing; a negative one is rejected.
func NewGetTopPalletsByShelfLifeQuery(limit int) (GetTopPalletsByShelfLifeQuery, error) {
	query := GetTopPalletsByShelfLifeQuery{guard: guard.NewConstructorGuard()}
	if err := query.setLimit(limit); err != nil {
		return GetTopPalletsByShelfLifeQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTopPalletsByShelfLifeQuery) Validate() error {
	return q.guard.Validate(ErrGetTopPalletsByShelfLifeQueryIsNotConstructed)
}

// Limit returns the maximum number of pallets to select.
func (q GetTopPalletsByShelfLifeQuery) Limit() int {
	return q.limit
}

func (q *GetTopPalletsByShelfLifeQuery) setLimit(limit int) error {
	if limit < 0 {
		return errs.NewValueIsOutOfRangeError("limit", limit, 0, math.MaxInt)
	}
	q.limit = limit
	return nil
}

// PalletShelfLife is the read model of one selected pallet. LatestExpireDate is the
// latest expire date among its boxes.
type PalletShelfLife struct {
	ID               kernel.ID
	Weight           uint64
	Volume           uint64
	BoxCount         int
	LatestExpireDate kernel.Date
}

// GetTopPalletsByShelfLifeQueryHandler builds the top-N report from the full pallet snapshot.
type GetTopPalletsByShelfLifeQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	analyzer   services.ShelfLifeAnalyzer
}

// NewGetTopPalletsByShelfLifeQueryHandler creates the handler.
func NewGetTopPalletsByShelfLifeQueryHandler(uowFactory ports.UnitOfWorkFactory) GetTopPalletsByShelfLifeQueryHandler {
	return GetTopPalletsByShelfLifeQueryHandler{
		uowFactory: uowFactory,
		analyzer:   services.NewShelfLifeAnalyzer(),
	}
}

// Handle returns the selected pallets, never more than the query limit.
func (h GetTopPalletsByShelfLifeQueryHandler) Handle(
	ctx context.Context,
	query GetTopPalletsByShelfLifeQuery,
) ([]PalletShelfLife, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer().Start(ctx, "GetTopPalletsByShelfLife")
	defer span.End()
	span.SetAttributes(attribute.Int("warehouse.limit", query.Limit()))

	result := make([]PalletShelfLife, 0, query.Limit())
	err := readSnapshot(ctx, h.uowFactory, func(uow ports.UnitOfWork) error {
		pallets, err := uow.PalletRepository().GetAll(ctx)
		if err != nil {
			return err
		}

		for _, p := range h.analyzer.TopNLongestShelfLife(pallets, query.Limit()) {
			latest, _ := p.LatestExpireDate()
			result = append(result, PalletShelfLife{
				ID:               p.ID(),
				Weight:           p.Weight(),
				Volume:           p.Volume(),
				BoxCount:         p.BoxCount(),
				LatestExpireDate: latest,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}

	return result, nil
}
