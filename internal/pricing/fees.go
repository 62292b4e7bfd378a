package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fulfillcalc/internal/rate"
)

// FeeQuote is what the logistics program charges for one item.
// PerShipment is charged once per cart, at the highest tier present.
type FeeQuote struct {
	PerItem     decimal.Decimal `json:"per_item"`
	PerShipment decimal.Decimal `json:"per_shipment"`
}

var (
	ErrNoFeeTier          = errors.New("no logistics fee tier for size category")
	ErrUnknownDestination = errors.New("unknown destination")
)

var (
	specialSurcharge  = decimal.RequireFromString("0.5")
	labelingSurcharge = decimal.RequireFromString("0.2")
)

type feeKey struct {
	size SizeCategory
	dest rate.Destination
}

func quote(perItem, perShipment string) FeeQuote {
	return FeeQuote{
		PerItem:     decimal.RequireFromString(perItem),
		PerShipment: decimal.RequireFromString(perShipment),
	}
}

var baseFees = map[feeKey]FeeQuote{
	{Small, rate.NL}:  quote("1.0", "3.0"),
	{Small, rate.BE}:  quote("1.0", "4.0"),
	{Medium, rate.NL}: quote("1.5", "4.0"),
	{Medium, rate.BE}: quote("1.5", "5.0"),
	{Large, rate.NL}:  quote("2.0", "5.0"),
	{Large, rate.BE}:  quote("2.0", "6.0"),
}

// LookupFee returns the quote for one item. Surcharges only touch PerItem.
func LookupFee(size SizeCategory, dest rate.Destination, special, labeling bool) (FeeQuote, error) {
	if size == TooLarge {
		return FeeQuote{}, ErrNoFeeTier
	}
	q, ok := baseFees[feeKey{size, dest}]
	if !ok {
		if _, err := rate.ParseDestination(string(dest)); err != nil {
			return FeeQuote{}, fmt.Errorf("%w: %q", ErrUnknownDestination, dest)
		}
		return FeeQuote{}, fmt.Errorf("%w: %s", ErrNoFeeTier, size)
	}
	if special {
		q.PerItem = q.PerItem.Add(specialSurcharge)
	}
	if labeling {
		q.PerItem = q.PerItem.Add(labelingSurcharge)
	}
	return q, nil
}

// FeeRow is one line of the published fee table.
type FeeRow struct {
	Size        SizeCategory     `json:"size"`
	Destination rate.Destination `json:"destination"`
	MaxLiters   decimal.Decimal  `json:"max_liters"`
	FeeQuote
}

// Surcharges are the flat per-item add-ons.
type Surcharges struct {
	Special  decimal.Decimal `json:"special"`
	Labeling decimal.Decimal `json:"labeling"`
}

// FeeTable lists the base fees ordered by size then destination.
func FeeTable() ([]FeeRow, Surcharges) {
	limits := map[SizeCategory]decimal.Decimal{
		Small:  smallMaxLiters,
		Medium: mediumMaxLiters,
		Large:  largeMaxLiters,
	}
	var rows []FeeRow
	for _, size := range []SizeCategory{Small, Medium, Large} {
		for _, dest := range rate.Destinations {
			rows = append(rows, FeeRow{
				Size:        size,
				Destination: dest,
				MaxLiters:   limits[size],
				FeeQuote:    baseFees[feeKey{size, dest}],
			})
		}
	}
	return rows, Surcharges{Special: specialSurcharge, Labeling: labelingSurcharge}
}
