package pallet

import (
	"errors"
	"slices"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// TareWeight is the weight of an empty pallet in grams.
const TareWeight = 30000

// Domain errors for pallet operations.
var (
	// ErrBoxDoesNotFitPallet is returned when a box footprint exceeds the pallet footprint.
	ErrBoxDoesNotFitPallet = errs.NewStateIsInvalidError("box does not fit pallet footprint")
	// ErrBoxIsAlreadyOnPallet is returned when the same box is added to the same pallet twice.
	ErrBoxIsAlreadyOnPallet = errs.NewStateIsInvalidError("box is already on this pallet")
	// ErrPalletIsNotConstructed is returned when using an improperly initialized Pallet.
	ErrPalletIsNotConstructed = errors.New("Pallet must be created via NewPallet or RestorePallet constructor")
)

// Pallet is the aggregate root owning an ordered collection of boxes.
// Width, height and depth describe the pallet itself; its weight, volume and expire
// date are derived from the boxes it carries.
//
// Key responsibilities:
//   - Owning the box collection and keeping each box's owner reference in sync
//   - Rejecting boxes that do not fit, belong elsewhere or are already present
//   - Deriving weight, volume and expire date
//
// Business rules:
//   - Pallet dimensions are strictly positive
//   - A box fits when its width and depth do not exceed the pallet's; height is ignored
//   - Boxes are unique by object identity and keep insertion order
//   - Weight = TareWeight + sum of box weights
//   - Volume = pallet volume + sum of box volumes
//   - ExpireDate = earliest box expire date, kernel.MaxDate when empty
//
// Example usage:
//
//	p, _ := pallet.NewPallet(100, 15, 100)
//	expire := kernel.MustDate(2024, time.January, 1)
//	box, _ := pallet.NewBox(100, 50, 20, 100, nil, &expire)
//	if err := p.AddBox(box); err != nil {
//	    // Handle state error
//	}
//	fmt.Println(p.Weight()) // 30100
type Pallet struct {
	dimensions
	// id is zero until the pallet is stored
	id kernel.ID
	// boxes in insertion order
	boxes []*Box
	// guard ensures the pallet was properly constructed
	guard guard.ConstructorGuard
}

// NewPallet creates an empty Pallet that has not been stored yet.
//
// Parameters:
//   - width, height, depth: Pallet size in centimetres (must be > 0)
//
// Returns:
//   - *Pallet: An empty pallet without identity
//   - error: Validation error for every zero measure
func NewPallet(width, height, depth uint32) (*Pallet, error) {
	p := &Pallet{
		guard: guard.NewConstructorGuard(),
	}

	if err := p.setDimensions(width, height, depth); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePallet reconstructs a stored Pallet with its boxes.
// Every box goes through AddBox, so a restored pallet satisfies the same rules as one
// built through the domain API and every box points back to it.
//
// Parameters:
//   - id: Identity assigned by storage (must be non-zero)
//   - width, height, depth: Stored pallet size
//   - boxes: Restored boxes in stored order, none of them attached to another pallet
//
// Returns:
//   - *Pallet: Restored pallet
//   - error: Validation or state error if the stored graph is inconsistent
//
// Example:
//
//	boxes := []*pallet.Box{box1, box2}
//	p, err := RestorePallet(7, 120, 15, 120, boxes)
//	if err != nil {
//	    return fmt.Errorf("restoration failed: %w", err)
//	}
func RestorePallet(id kernel.ID, width, height, depth uint32, boxes []*Box) (*Pallet, error) {
	p := &Pallet{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setDimensions(width, height, depth),
	); err != nil {
		return nil, err
	}

	for _, box := range boxes {
		if err := p.AddBox(box); err != nil {
			for _, added := range p.boxes {
				added.removeFromPallet()
			}
			return nil, err
		}
	}

	return p, nil
}

// Validate checks if the Pallet was properly constructed.
func (p *Pallet) Validate() error {
	if p == nil {
		return ErrPalletIsNotConstructed
	}
	return p.guard.Validate(ErrPalletIsNotConstructed)
}

// IsEqual compares two pallets by identity. Pallets that were never stored are only
// equal to themselves.
func (p *Pallet) IsEqual(other *Pallet) bool {
	if other == nil {
		return false
	}
	if p.id.IsZero() || other.id.IsZero() {
		return p == other
	}
	return p.id == other.id
}

// ID returns the pallet identity, zero until stored.
func (p *Pallet) ID() kernel.ID {
	return p.id
}

// AssignID sets the identity generated by storage. It may be called only once.
func (p *Pallet) AssignID(id kernel.ID) error {
	if !p.id.IsZero() {
		return ErrIDIsAlreadyAssigned
	}
	return p.setID(id)
}

// Dimensions returns the pallet size.
func (p *Pallet) Dimensions() kernel.Dimensions {
	return p.dimensions
}

// Boxes returns the boxes in insertion order.
// The returned slice is a copy to prevent external modification.
func (p *Pallet) Boxes() []*Box {
	out := make([]*Box, len(p.boxes))
	copy(out, p.boxes)
	return out
}

// BoxCount returns the number of boxes on the pallet.
func (p *Pallet) BoxCount() int {
	return len(p.boxes)
}

// HasBoxes reports whether at least one box stands on the pallet.
func (p *Pallet) HasBoxes() bool {
	return len(p.boxes) > 0
}

// Contains reports whether this exact box object stands on the pallet.
func (p *Pallet) Contains(box *Box) bool {
	return slices.Contains(p.boxes, box)
}

// Weight returns TareWeight plus the weight of every box, in grams.
func (p *Pallet) Weight() uint64 {
	total := uint64(TareWeight)
	for _, box := range p.boxes {
		total += box.Weight()
	}
	return total
}

// Volume returns the pallet's own volume plus the volume of every box, in cubic centimetres.
func (p *Pallet) Volume() uint64 {
	total := p.FootprintVolume()
	for _, box := range p.boxes {
		total += box.Volume()
	}
	return total
}

// ExpireDate returns the earliest expire date among the boxes.
// An empty pallet never expires and reports kernel.MaxDate.
func (p *Pallet) ExpireDate() kernel.Date {
	earliest := kernel.MaxDate
	for _, box := range p.boxes {
		if box.ExpireDate().Before(earliest) {
			earliest = box.ExpireDate()
		}
	}
	return earliest
}

// LatestExpireDate returns the latest expire date among the boxes.
// The second result is false for an empty pallet.
func (p *Pallet) LatestExpireDate() (kernel.Date, bool) {
	if len(p.boxes) == 0 {
		return kernel.Date{}, false
	}
	latest := p.boxes[0].ExpireDate()
	for _, box := range p.boxes[1:] {
		if box.ExpireDate().After(latest) {
			latest = box.ExpireDate()
		}
	}
	return latest, true
}

// IsExpired applies the Box.IsExpired comparison to the pallet's derived expire date.
func (p *Pallet) IsExpired(clock kernel.Clock) bool {
	return p.ExpireDate().After(clock.Today())
}

// AddBox places box on the pallet.
// The checks run in a fixed order and the first failure is returned:
//  1. the box footprint fits the pallet (ErrBoxDoesNotFitPallet)
//  2. the box is not owned by another pallet (ErrBoxIsOnAnotherPallet)
//  3. the box is not already on this pallet (ErrBoxIsAlreadyOnPallet)
//
// On failure neither the pallet nor the box changes.
//
// Parameters:
//   - box: A constructed box
//
// Returns:
//   - error: Validation error for an unconstructed box, or one of the state errors above
//
// Example:
//
//	if err := p.AddBox(box); errors.Is(err, pallet.ErrBoxDoesNotFitPallet) {
//	    // choose a bigger pallet
//	}
func (p *Pallet) AddBox(box *Box) error {
	if err := box.Validate(); err != nil {
		return err
	}

	if !p.Fits(box.dimensions) {
		return ErrBoxDoesNotFitPallet
	}
	if box.pallet != nil && box.pallet != p {
		return ErrBoxIsOnAnotherPallet
	}
	if p.Contains(box) {
		return ErrBoxIsAlreadyOnPallet
	}

	if err := box.assignToPallet(p); err != nil {
		return err
	}
	p.boxes = append(p.boxes, box)
	return nil
}

// RemoveBox takes box off the pallet and clears its owner.
// Removing a box that is not on the pallet does nothing.
func (p *Pallet) RemoveBox(box *Box) {
	idx := slices.Index(p.boxes, box)
	if idx < 0 {
		return
	}
	p.boxes = slices.Delete(p.boxes, idx, idx+1)
	box.removeFromPallet()
}

func (p *Pallet) setID(id kernel.ID) error {
	if id.IsZero() {
		return ErrIDIsRequired
	}
	p.id = id
	return nil
}

func (p *Pallet) setDimensions(width, height, depth uint32) error {
	dims, err := kernel.NewDimensions(width, height, depth)
	if err != nil {
		return err
	}
	p.dimensions = dims
	return nil
}
