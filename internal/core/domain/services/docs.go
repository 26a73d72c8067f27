// Package services provides domain services that work on a whole warehouse snapshot
// rather than on a single aggregate.
//
// The package includes:
//   - ShelfLifeAnalyzer: groups pallets by expire date and ranks them by shelf life
//
// The services are pure: they never mutate the pallets they receive and perform no I/O.
package services
