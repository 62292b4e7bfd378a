package rate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Destination is a supported ship-to country.
type Destination string

const (
	NL Destination = "NL"
	BE Destination = "BE"
)

// Destinations lists every supported destination in display order.
var Destinations = []Destination{NL, BE}

// ParseDestination accepts a country code in any case.
func ParseDestination(s string) (Destination, error) {
	switch Destination(strings.ToUpper(strings.TrimSpace(s))) {
	case NL:
		return NL, nil
	case BE:
		return BE, nil
	default:
		return "", fmt.Errorf("unsupported destination %q", s)
	}
}

// UnmarshalText upper-cases the code so "nl" decodes as NL. Unsupported
// codes are kept as given and left to validation.
func (d *Destination) UnmarshalText(b []byte) error {
	*d = Destination(strings.ToUpper(strings.TrimSpace(string(b))))
	return nil
}

// Parcel is a box measured in centimeters and kilograms.
type Parcel struct {
	Length float64 `json:"length" yaml:"length" validate:"gte=0,finite"`
	Width  float64 `json:"width" yaml:"width" validate:"gte=0,finite"`
	Height float64 `json:"height" yaml:"height" validate:"gte=0,finite"`
	Weight float64 `json:"weight" yaml:"weight" validate:"gte=0,finite"`
}

var cm3PerLiter = decimal.NewFromInt(1000)

// Volume returns the parcel volume in liters.
func Volume(p Parcel) decimal.Decimal {
	return decimal.NewFromFloat(p.Length).
		Mul(decimal.NewFromFloat(p.Width)).
		Mul(decimal.NewFromFloat(p.Height)).
		Div(cm3PerLiter)
}

// Estimator prices a parcel shipped by the seller.
type Estimator interface {
	Estimate(dest Destination, p Parcel) decimal.Decimal
}

type linearRate struct {
	base     decimal.Decimal
	perLiter decimal.Decimal
	perKilo  decimal.Decimal
}

// Linear applies base + perLiter*volume + perKilo*weight, with one set of
// coefficients per destination.
type Linear struct {
	rates map[Destination]linearRate
}

func NewLinear() *Linear {
	return &Linear{rates: map[Destination]linearRate{
		NL: {
			base:     decimal.RequireFromString("5.0"),
			perLiter: decimal.RequireFromString("0.1"),
			perKilo:  decimal.RequireFromString("0.5"),
		},
		BE: {
			base:     decimal.RequireFromString("6.0"),
			perLiter: decimal.RequireFromString("0.15"),
			perKilo:  decimal.RequireFromString("0.6"),
		},
	}}
}

// Estimate falls back to the BE coefficients for anything that is not NL.
func (l *Linear) Estimate(dest Destination, p Parcel) decimal.Decimal {
	r, ok := l.rates[dest]
	if !ok {
		r = l.rates[BE]
	}
	return r.base.
		Add(r.perLiter.Mul(Volume(p))).
		Add(r.perKilo.Mul(decimal.NewFromFloat(p.Weight)))
}
