package palletrepo

import (
	"context"

	"gorm.io/gorm"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// GormPalletRepository implements PalletRepository using GORM.
type GormPalletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormPalletRepository creates a new GORM pallet repository.
func NewGormPalletRepository(db *gorm.DB, tracker aggregateTracker) *GormPalletRepository {
	return &GormPalletRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pallet, assigns the generated identity and links the boxes it
// already carries.
func (r *GormPalletRepository) Add(ctx context.Context, aggregate *pallet.Pallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.ID().IsZero() {
		return ErrAggregateIsAlreadyStored
	}

	dto := palletFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Boxes").Create(&dto).Error; err != nil {
		return translateError("add pallet", err)
	}

	if err := aggregate.AssignID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	if err := r.syncMembership(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackPallet(aggregate)
	return nil
}

// Update saves an existing pallet and its membership: boxes on the pallet point to it,
// boxes that were taken off are detached.
func (r *GormPalletRepository) Update(ctx context.Context, aggregate *pallet.Pallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.ID().IsZero() {
		return ErrAggregateIsNotStored
	}

	dto := palletFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PalletDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"width":  dto.Width,
			"height": dto.Height,
			"depth":  dto.Depth,
		})
	if result.Error != nil {
		return translateError("update pallet", result.Error)
	}

	if result.RowsAffected == 0 {
		return notFound("update pallet", "pallet", aggregate.ID(), gorm.ErrRecordNotFound)
	}

	if err := r.syncMembership(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackPallet(aggregate)
	return nil
}

// Get retrieves a pallet by ID with all its boxes.
func (r *GormPalletRepository) Get(ctx context.Context, id kernel.ID) (*pallet.Pallet, error) {
	return r.loader().loadPallet(ctx, id)
}

// GetAll retrieves every pallet ordered by ID, each with its boxes.
//
// Example:
//
//	pallets, err := repo.GetAll(ctx)
//	if err != nil {
//		return fmt.Errorf("failed to load pallets: %w", err)
//	}
//	for _, p := range pallets {
//		fmt.Printf("Pallet %d carries %d boxes\n", p.ID(), p.BoxCount())
//	}
func (r *GormPalletRepository) GetAll(ctx context.Context) ([]*pallet.Pallet, error) {
	return r.loader().loadAllPallets(ctx)
}

func (r *GormPalletRepository) loader() graphLoader {
	return graphLoader{db: r.db, tracker: r.tracker}
}

// syncMembership makes the boxes table agree with the pallet's box collection.
func (r *GormPalletRepository) syncMembership(ctx context.Context, aggregate *pallet.Pallet) error {
	palletID := uint64(aggregate.ID())
	boxIDs := make([]uint64, 0, aggregate.BoxCount())
	for _, box := range aggregate.Boxes() {
		if box.ID().IsZero() {
			return ErrBoxIsNotStored
		}
		boxIDs = append(boxIDs, uint64(box.ID()))
	}

	detach := r.db.WithContext(ctx).Model(&BoxDTO{}).Where("pallet_id = ?", palletID)
	if len(boxIDs) > 0 {
		detach = detach.Where("id NOT IN ?", boxIDs)
	}
	if err := detach.Update("pallet_id", nil).Error; err != nil {
		return translateError("detach boxes", err)
	}

	if len(boxIDs) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).
		Model(&BoxDTO{}).
		Where("id IN ?", boxIDs).
		Update("pallet_id", palletID).Error; err != nil {
		return translateError("attach boxes", err)
	}

	return nil
}
