package kernel

import (
	"errors"
	"fmt"
	"math"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrDimensionsAreNotConstructed is returned when attempting to use a zero-value Dimensions.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions constructor")

// Dimensioned is the capability shared by every physical object in the warehouse.
// Width, height and depth are centimetres, weight is grams and volume is cubic centimetres.
// Presentation code depends on this contract only, never on the concrete entity.
type Dimensioned interface {
	Width() uint32
	Height() uint32
	Depth() uint32
	Weight() uint64
	Volume() uint64
}

// Dimensions is an immutable value object holding the outer size of a physical object
// in centimetres. All three measures are strictly positive.
//
// Dimensions is embedded by entities, which gives them the Width, Height and Depth getters
// required by Dimensioned. Each entity supplies its own Weight and Volume because the
// derivation rules differ between boxes and pallets.
//
// Example:
//
//	dims, err := kernel.NewDimensions(120, 15, 80)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(dims.FootprintVolume()) // 144000
type Dimensions struct { //nolint:recvcheck //using for validation
	width  uint32
	height uint32
	depth  uint32
	guard  guard.ConstructorGuard
}

// NewDimensions creates Dimensions after checking that every measure is positive.
// All violations are reported at once, joined with errors.Join.
//
// Parameters:
//   - width: Size along the X axis in centimetres (must be > 0)
//   - height: Size along the vertical axis in centimetres (must be > 0)
//   - depth: Size along the Y axis in centimetres (must be > 0)
//
// Returns:
//   - Dimensions: A valid value object
//   - error: ValueIsOutOfRangeError for each zero measure
//
// Example:
//
//	dims, err := NewDimensions(0, 10, 0)
//	// err reports both width and depth
func NewDimensions(width, height, depth uint32) (Dimensions, error) {
	dims := Dimensions{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dims.setWidth(width),
		dims.setHeight(height),
		dims.setDepth(depth),
	); err != nil {
		return Dimensions{}, err
	}

	return dims, nil
}

// Validate checks if the Dimensions were created through NewDimensions.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// Width returns the size along the X axis in centimetres.
func (d Dimensions) Width() uint32 {
	return d.width
}

// Height returns the vertical size in centimetres.
func (d Dimensions) Height() uint32 {
	return d.height
}

// Depth returns the size along the Y axis in centimetres.
func (d Dimensions) Depth() uint32 {
	return d.depth
}

// FootprintVolume returns width × height × depth in cubic centimetres.
func (d Dimensions) FootprintVolume() uint64 {
	return uint64(d.width) * uint64(d.height) * uint64(d.depth)
}

// Fits reports whether other can stand on d. Only the footprint is compared:
// other.Width must not exceed Width and other.Depth must not exceed Depth.
// Height is deliberately unconstrained and boxes are never rotated.
//
// Example:
//
//	pallet, _ := NewDimensions(100, 15, 100)
//	box, _ := NewDimensions(100, 500, 100)
//	pallet.Fits(box) // true, height is ignored
func (d Dimensions) Fits(other Dimensions) bool {
	return other.width <= d.width && other.depth <= d.depth
}

// IsEqual compares two Dimensions by their measures.
func (d Dimensions) IsEqual(other Dimensions) bool {
	return d.width == other.width && d.height == other.height && d.depth == other.depth
}

// String returns the "WxHxD" representation in centimetres.
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.width, d.height, d.depth)
}

func (d *Dimensions) setWidth(width uint32) error {
	if width == 0 {
		return errs.NewValueIsOutOfRangeError("width", width, 1, uint32(math.MaxUint32))
	}
	d.width = width
	return nil
}

func (d *Dimensions) setHeight(height uint32) error {
	if height == 0 {
		return errs.NewValueIsOutOfRangeError("height", height, 1, uint32(math.MaxUint32))
	}
	d.height = height
	return nil
}

func (d *Dimensions) setDepth(depth uint32) error {
	if depth == 0 {
		return errs.NewValueIsOutOfRangeError("depth", depth, 1, uint32(math.MaxUint32))
	}
	d.depth = depth
	return nil
}
