// Package kernel provides the value objects shared by every warehouse aggregate.
//
// The package includes:
//   - ID: identity assigned by the persistence layer, zero until the entity is stored
//   - Date: calendar date without time of day, backed by cloud.google.com/go/civil
//   - Clock: source of "today", with SystemClock for production and FixedClock for tests
//   - Dimensions: validated width, height and depth in centimetres
//   - Dimensioned: the read-only physical contract implemented by boxes and pallets
//
// Units are fixed across the domain: centimetres, grams and cubic centimetres.
// WeightKilograms and VolumeCubicMeters convert for display only.
package kernel
