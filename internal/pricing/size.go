package pricing

import "github.com/shopspring/decimal"

// SizeCategory is the logistics-program fee tier derived from volume.
type SizeCategory int

const (
	Small SizeCategory = iota
	Medium
	Large
	// TooLarge items cannot be shipped through the logistics program.
	TooLarge
)

func (c SizeCategory) String() string {
	switch c {
	case Small:
		return "Small"
	case Medium:
		return "Medium"
	case Large:
		return "Large"
	default:
		return "TooLarge"
	}
}

// MarshalText lets size categories appear as names in JSON and YAML.
func (c SizeCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Upper bounds in liters, inclusive.
var (
	smallMaxLiters  = decimal.NewFromInt(1)
	mediumMaxLiters = decimal.NewFromInt(5)
	largeMaxLiters  = decimal.NewFromInt(10)
)

// Classify maps a volume in liters to its size category.
func Classify(volume decimal.Decimal) SizeCategory {
	switch {
	case volume.LessThanOrEqual(smallMaxLiters):
		return Small
	case volume.LessThanOrEqual(mediumMaxLiters):
		return Medium
	case volume.LessThanOrEqual(largeMaxLiters):
		return Large
	default:
		return TooLarge
	}
}
