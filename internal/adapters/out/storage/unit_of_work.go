package storage

import (
	"context"

	"gorm.io/gorm"

	"warehouse/internal/adapters/out/storage/palletrepo"
	"warehouse/internal/core/ports"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
//
// Example:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance with its own transaction state and
// identity map.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		identity: palletrepo.NewIdentityMap(),
	}
}

// GormUnitOfWork coordinates a database transaction for one business operation.
//
// Every repository handed out by the same unit of work shares one identity map:
// loading pallet 7 twice, or loading a box that stands on pallet 7, yields the very
// same objects. The map is cleared when the transaction ends.
//
// Example usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return fmt.Errorf("failed to begin transaction: %w", err)
//	}
//	defer uow.Rollback(ctx)
//
//	p, err := uow.PalletRepository().Get(ctx, palletID)
//	if err != nil {
//	    return err
//	}
//	box, err := uow.BoxRepository().Get(ctx, boxID)
//	if err != nil {
//	    return err
//	}
//	if err := p.AddBox(box); err != nil {
//	    return err
//	}
//	if err := uow.PalletRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	identity *palletrepo.IdentityMap
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.identity = palletrepo.NewIdentityMap()
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes a
// deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.identity = palletrepo.NewIdentityMap()
	return err
}

// PalletRepository provides access to pallet persistence within the unit of work.
// Operations run inside the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
func (uow *GormUnitOfWork) PalletRepository() ports.PalletRepository {
	return palletrepo.NewGormPalletRepository(uow.conn(), uow.identity)
}

// BoxRepository provides access to box persistence within the unit of work.
// Operations run inside the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
func (uow *GormUnitOfWork) BoxRepository() ports.BoxRepository {
	return palletrepo.NewGormBoxRepository(uow.conn(), uow.identity)
}

// TrackedCount returns the number of pallets and boxes handed out since the
// transaction began.
func (uow *GormUnitOfWork) TrackedCount() int {
	return uow.identity.Len()
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
