package palletrepo

import (
	"context"

	"gorm.io/gorm"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// GormBoxRepository implements BoxRepository using GORM.
type GormBoxRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormBoxRepository creates a new GORM box repository.
func NewGormBoxRepository(db *gorm.DB, tracker aggregateTracker) *GormBoxRepository {
	return &GormBoxRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new box and assigns the generated identity.
// A placed box requires its pallet to be stored first.
func (r *GormBoxRepository) Add(ctx context.Context, box *pallet.Box) error {
	if err := box.Validate(); err != nil {
		return err
	}
	if !box.ID().IsZero() {
		return ErrAggregateIsAlreadyStored
	}
	if palletID := box.PalletID(); palletID != nil && palletID.IsZero() {
		return ErrPalletIsNotStored
	}

	dto := boxFromDomain(box)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateError("add box", err)
	}

	if err := box.AssignID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackBox(box)
	return nil
}

// Update saves an existing box including its pallet membership.
func (r *GormBoxRepository) Update(ctx context.Context, box *pallet.Box) error {
	if err := box.Validate(); err != nil {
		return err
	}
	if box.ID().IsZero() {
		return ErrAggregateIsNotStored
	}
	if palletID := box.PalletID(); palletID != nil && palletID.IsZero() {
		return ErrPalletIsNotStored
	}

	dto := boxFromDomain(box)
	result := r.db.WithContext(ctx).
		Model(&BoxDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"width":           dto.Width,
			"height":          dto.Height,
			"depth":           dto.Depth,
			"weight":          dto.Weight,
			"production_date": dto.ProductionDate,
			"expire_date":     dto.ExpireDate,
			"pallet_id":       dto.PalletID,
		})
	if result.Error != nil {
		return translateError("update box", result.Error)
	}

	if result.RowsAffected == 0 {
		return notFound("update box", "box", box.ID(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackBox(box)
	return nil
}

// Get retrieves a box by ID. A placed box comes attached to its pallet, which is
// loaded with all of its boxes.
func (r *GormBoxRepository) Get(ctx context.Context, id kernel.ID) (*pallet.Box, error) {
	if box, ok := r.tracker.TrackedBox(id); ok {
		return box, nil
	}

	var dto BoxDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", uint64(id)).Error; err != nil {
		return nil, notFound("get box", "box", id, err)
	}

	loader := r.loader()
	if dto.PalletID == nil {
		return loader.restoreBox(dto)
	}

	if _, err := loader.loadPallet(ctx, kernel.ID(*dto.PalletID)); err != nil {
		return nil, err
	}

	box, ok := r.tracker.TrackedBox(id)
	if !ok {
		return nil, notFound("get box", "box", id, gorm.ErrRecordNotFound)
	}
	return box, nil
}

// GetAll retrieves every box ordered by ID. Placed boxes are attached to their
// pallets, which are loaded in full.
func (r *GormBoxRepository) GetAll(ctx context.Context) ([]*pallet.Box, error) {
	loader := r.loader()
	if _, err := loader.loadAllPallets(ctx); err != nil {
		return nil, err
	}

	var dtos []BoxDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, translateError("get all boxes", err)
	}

	boxes := make([]*pallet.Box, 0, len(dtos))
	for _, dto := range dtos {
		box, err := loader.restoreBox(dto)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, box)
	}

	return boxes, nil
}

func (r *GormBoxRepository) loader() graphLoader {
	return graphLoader{db: r.db, tracker: r.tracker}
}
