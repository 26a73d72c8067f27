// Package pallet contains the Pallet aggregate and the Box entity it owns.
//
// A Pallet holds an ordered set of boxes. Membership is changed only through
// Pallet.AddBox and Pallet.RemoveBox, which keep each box's owner reference in sync;
// Box exposes the owner read-only through Pallet and PalletID.
//
// Construction failures are validation errors (see errs.IsValidation). Rejected
// membership changes are state errors (see errs.IsState) and leave both entities
// untouched.
package pallet
