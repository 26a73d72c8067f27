package palletrepo

import (
	"context"

	"gorm.io/gorm"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// graphLoader rebuilds pallets with their boxes, reusing objects already tracked in
// the current unit of work.
type graphLoader struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func orderBoxes(db *gorm.DB) *gorm.DB {
	return db.Order("boxes.id")
}

func (l graphLoader) loadPallet(ctx context.Context, id kernel.ID) (*pallet.Pallet, error) {
	if p, ok := l.tracker.TrackedPallet(id); ok {
		return p, nil
	}

	var dto PalletDTO
	if err := l.db.WithContext(ctx).Preload("Boxes", orderBoxes).First(&dto, "id = ?", uint64(id)).Error; err != nil {
		return nil, notFound("get pallet", "pallet", id, err)
	}

	return l.restorePallet(dto)
}

func (l graphLoader) loadAllPallets(ctx context.Context) ([]*pallet.Pallet, error) {
	var dtos []PalletDTO
	if err := l.db.WithContext(ctx).Preload("Boxes", orderBoxes).Order("id").Find(&dtos).Error; err != nil {
		return nil, translateError("get all pallets", err)
	}

	pallets := make([]*pallet.Pallet, 0, len(dtos))
	for _, dto := range dtos {
		p, err := l.restorePallet(dto)
		if err != nil {
			return nil, err
		}
		pallets = append(pallets, p)
	}

	return pallets, nil
}

func (l graphLoader) restorePallet(dto PalletDTO) (*pallet.Pallet, error) {
	if p, ok := l.tracker.TrackedPallet(kernel.ID(dto.ID)); ok {
		return p, nil
	}

	boxes := make([]*pallet.Box, 0, len(dto.Boxes))
	for _, boxDTO := range dto.Boxes {
		box, err := l.restoreBox(boxDTO)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, box)
	}

	p, err := pallet.RestorePallet(kernel.ID(dto.ID), dto.Width, dto.Height, dto.Depth, boxes)
	if err != nil {
		return nil, err
	}

	l.tracker.TrackPallet(p)
	return p, nil
}

func (l graphLoader) restoreBox(dto BoxDTO) (*pallet.Box, error) {
	if box, ok := l.tracker.TrackedBox(kernel.ID(dto.ID)); ok {
		return box, nil
	}

	box, err := boxToDomain(dto)
	if err != nil {
		return nil, err
	}

	l.tracker.TrackBox(box)
	return box, nil
}
