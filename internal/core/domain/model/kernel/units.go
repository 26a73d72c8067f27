package kernel

const (
	gramsPerKilogram              = 1_000
	cubicCentimetresPerCubicMetre = 1_000_000
)

// Kilograms converts grams to kilograms.
func Kilograms(grams uint64) float64 {
	return float64(grams) / gramsPerKilogram
}

// CubicMeters converts cubic centimetres to cubic metres.
func CubicMeters(cubicCentimetres uint64) float64 {
	return float64(cubicCentimetres) / cubicCentimetresPerCubicMetre
}

// WeightKilograms converts the weight of obj from grams to kilograms.
func WeightKilograms(obj Dimensioned) float64 {
	return Kilograms(obj.Weight())
}

// VolumeCubicMeters converts the volume of obj from cubic centimetres to cubic metres.
func VolumeCubicMeters(obj Dimensioned) float64 {
	return CubicMeters(obj.Volume())
}
