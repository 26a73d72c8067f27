package pallet

import (
	"errors"
	"math"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// DefaultShelfLifeDays is added to the production date when a box is created
// without an explicit expire date.
const DefaultShelfLifeDays = 100

// Domain errors for box operations.
var (
	// ErrExpireDateIsRequired is returned when neither production nor expire date is supplied.
	ErrExpireDateIsRequired = errs.NewValueIsRequiredError("expire date or production date")
	// ErrExpireDateBeforeProduction is returned when the expire date is not strictly after the production date.
	ErrExpireDateBeforeProduction = errs.NewValueIsInvalidErrorWithCause("expire date",
		errors.New("expire date must be after production date"))
	// ErrWeightIsRequired is returned when a box weighs nothing.
	ErrWeightIsRequired = errs.NewValueIsOutOfRangeError("weight", uint32(0), uint32(1), uint32(math.MaxUint32))
	// ErrIDIsRequired is returned when a zero identity is restored or assigned.
	ErrIDIsRequired = errs.NewValueIsRequiredError("id")
	// ErrIDIsAlreadyAssigned is returned when the persistence layer assigns an identity twice.
	ErrIDIsAlreadyAssigned = errs.NewStateIsInvalidError("id is already assigned")
	// ErrBoxIsOnAnotherPallet is returned when a box owned by one pallet is added to another.
	ErrBoxIsOnAnotherPallet = errs.NewStateIsInvalidError("box is already on another pallet")
	// ErrBoxIsNotConstructed is returned when using an improperly initialized Box.
	ErrBoxIsNotConstructed = errors.New("Box must be created via NewBox or RestoreBox constructor")
)

// dimensions is embedded under an unexported name so that Width, Height and Depth are
// promoted while the measures stay unassignable from other packages.
type dimensions = kernel.Dimensions

// Box is a leaf entity: a physical box that may stand on at most one pallet.
//
// Key responsibilities:
//   - Holding validated dimensions and weight
//   - Resolving the expire date from the optional production and expire dates
//   - Tracking its owning pallet through a back-reference maintained only by Pallet
//
// Business rules:
//   - Width, height, depth and weight are strictly positive
//   - At least one of production date and expire date is supplied
//   - Production date only: expire date = production date + DefaultShelfLifeDays
//   - Both dates: expire date must be strictly after production date
//   - PalletID is nil exactly when the box stands on no pallet
//
// Example usage:
//
//	production := kernel.MustDate(2023, time.January, 1)
//	box, err := pallet.NewBox(40, 20, 30, 1500, &production, nil)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(box.ExpireDate()) // 2023-04-11
type Box struct {
	dimensions
	// id is zero until the box is stored
	id kernel.ID
	// weight of the box in grams
	weight uint32
	// productionDate is optional
	productionDate *kernel.Date
	// expireDate is always resolved at construction
	expireDate kernel.Date
	// pallet is the owning pallet; nil means the box is not placed
	pallet *Pallet
	// guard ensures the box was properly constructed
	guard guard.ConstructorGuard
}

// NewBox creates a Box that has not been stored yet.
// All numeric violations are reported together; date rules are checked afterwards.
//
// Parameters:
//   - width, height, depth: Outer size in centimetres (must be > 0)
//   - weight: Weight in grams (must be > 0)
//   - productionDate: Optional production date
//   - expireDate: Optional expire date
//
// Returns:
//   - *Box: A box without identity and without pallet
//   - error: Validation error describing every broken rule
//
// Example:
//
//	expire := kernel.MustDate(2024, time.March, 15)
//	box, err := NewBox(12, 60, 30, 500, nil, &expire)
func NewBox(
	width, height, depth, weight uint32,
	productionDate *kernel.Date,
	expireDate *kernel.Date,
) (*Box, error) {
	box := &Box{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		box.setDimensions(width, height, depth),
		box.setWeight(weight),
	); err != nil {
		return nil, err
	}

	if err := box.setDates(productionDate, expireDate); err != nil {
		return nil, err
	}

	return box, nil
}

// RestoreBox reconstructs a stored Box. The box is detached; Pallet re-attaches it
// when the owning pallet is restored.
//
// Parameters:
//   - id: Identity assigned by storage (must be non-zero)
//   - width, height, depth, weight: Stored measures
//   - productionDate: Stored production date, nil when unknown
//   - expireDate: Stored expire date
//
// Returns:
//   - *Box: Restored box
//   - error: Validation error if stored values break a construction rule
func RestoreBox(
	id kernel.ID,
	width, height, depth, weight uint32,
	productionDate *kernel.Date,
	expireDate kernel.Date,
) (*Box, error) {
	box := &Box{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		box.setID(id),
		box.setDimensions(width, height, depth),
		box.setWeight(weight),
	); err != nil {
		return nil, err
	}

	if err := box.setDates(productionDate, &expireDate); err != nil {
		return nil, err
	}

	return box, nil
}

// Validate checks if the Box was properly constructed.
func (b *Box) Validate() error {
	if b == nil {
		return ErrBoxIsNotConstructed
	}
	return b.guard.Validate(ErrBoxIsNotConstructed)
}

// IsEqual compares two boxes by identity. Boxes that were never stored are only
// equal to themselves.
func (b *Box) IsEqual(other *Box) bool {
	if other == nil {
		return false
	}
	if b.id.IsZero() || other.id.IsZero() {
		return b == other
	}
	return b.id == other.id
}

// ID returns the box identity, zero until stored.
func (b *Box) ID() kernel.ID {
	return b.id
}

// AssignID sets the identity generated by storage. It may be called only once.
func (b *Box) AssignID(id kernel.ID) error {
	if !b.id.IsZero() {
		return ErrIDIsAlreadyAssigned
	}
	return b.setID(id)
}

// Dimensions returns the outer size of the box.
func (b *Box) Dimensions() kernel.Dimensions {
	return b.dimensions
}

// Weight returns the box weight in grams.
func (b *Box) Weight() uint64 {
	return uint64(b.weight)
}

// Volume returns width × height × depth in cubic centimetres.
func (b *Box) Volume() uint64 {
	return b.FootprintVolume()
}

// ProductionDate returns a copy of the production date, or nil when it was not supplied.
func (b *Box) ProductionDate() *kernel.Date {
	if b.productionDate == nil {
		return nil
	}
	date := *b.productionDate
	return &date
}

// ExpireDate returns the resolved expire date.
func (b *Box) ExpireDate() kernel.Date {
	return b.expireDate
}

// Pallet returns the owning pallet, or nil.
func (b *Box) Pallet() *Pallet {
	return b.pallet
}

// PalletID returns the identity of the owning pallet, or nil when the box is not placed.
// It is derived from the owner reference, so the two can never disagree.
func (b *Box) PalletID() *kernel.ID {
	if b.pallet == nil {
		return nil
	}
	id := b.pallet.id
	return &id
}

// IsExpired reports whether the expire date lies after today according to clock.
//
// The comparison direction is kept exactly as the warehouse rules define it: a box
// whose expire date is still in the future reports true. Callers that need the
// conventional meaning should compare ExpireDate with the clock themselves.
func (b *Box) IsExpired(clock kernel.Clock) bool {
	return b.expireDate.After(clock.Today())
}

// assignToPallet records p as the owner. Only Pallet.AddBox calls it, after its own checks.
func (b *Box) assignToPallet(p *Pallet) error {
	if b.pallet != nil && b.pallet != p {
		return ErrBoxIsOnAnotherPallet
	}
	b.pallet = p
	return nil
}

// removeFromPallet clears the owner unconditionally.
func (b *Box) removeFromPallet() {
	b.pallet = nil
}

func (b *Box) setID(id kernel.ID) error {
	if id.IsZero() {
		return ErrIDIsRequired
	}
	b.id = id
	return nil
}

func (b *Box) setDimensions(width, height, depth uint32) error {
	dims, err := kernel.NewDimensions(width, height, depth)
	if err != nil {
		return err
	}
	b.dimensions = dims
	return nil
}

func (b *Box) setWeight(weight uint32) error {
	if weight == 0 {
		return ErrWeightIsRequired
	}
	b.weight = weight
	return nil
}

func (b *Box) setDates(productionDate, expireDate *kernel.Date) error {
	expire, err := resolveExpireDate(productionDate, expireDate)
	if err != nil {
		return err
	}
	if productionDate != nil {
		production := *productionDate
		b.productionDate = &production
	}
	b.expireDate = expire
	return nil
}

// resolveExpireDate applies the three-way date rule.
func resolveExpireDate(productionDate, expireDate *kernel.Date) (kernel.Date, error) {
	for _, d := range []*kernel.Date{productionDate, expireDate} {
		if d == nil {
			continue
		}
		if err := d.Validate(); err != nil {
			return kernel.Date{}, err
		}
	}

	switch {
	case productionDate == nil && expireDate == nil:
		return kernel.Date{}, ErrExpireDateIsRequired
	case expireDate == nil:
		return productionDate.AddDays(DefaultShelfLifeDays), nil
	case productionDate == nil:
		return *expireDate, nil
	case !expireDate.After(*productionDate):
		return kernel.Date{}, ErrExpireDateBeforeProduction
	default:
		return *expireDate, nil
	}
}
