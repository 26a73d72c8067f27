// Package errs defines the error kinds shared by the warehouse domain, its use cases
// and its adapters.
//
// Kinds and their sentinels:
//   - ValueIsRequiredError (ErrValueIsRequired): a mandatory value is missing
//   - ValueIsInvalidError (ErrValueIsInvalid): a value breaks a rule, such as an expire
//     date before the production date
//   - ValueIsOutOfRangeError (ErrValueIsOutOfRange): a value is outside [Min..Max]
//   - ObjectNotFoundError (ErrObjectNotFound): a lookup by identity found nothing
//   - StateIsInvalidError (ErrStateIsInvalid): a mutation would break a containment
//     invariant of existing pallets and boxes
//
// Every kind has a constructor with and without a cause, and unwraps to its sentinel,
// so callers test with errors.Is or the helpers below.
//
// The first three kinds are validation failures (see IsValidation), raised while an
// entity is being constructed. StateIsInvalidError is raised by mutations on existing
// entities (see IsState). Anything else reaching a caller originates in persistence.
package errs
