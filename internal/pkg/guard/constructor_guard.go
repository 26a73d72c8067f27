// Package guard lets entities and commands tell a value built by its constructor
// apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created through a constructor.
// The zero value reports "not constructed".
//
// Example:
//
//	type Pallet struct {
//	    width uint32
//	    guard guard.ConstructorGuard
//	}
//
//	func NewPallet(width uint32) (*Pallet, error) {
//	    return &Pallet{width: width, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p *Pallet) Validate() error {
//	    return p.guard.Validate(ErrPalletIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
