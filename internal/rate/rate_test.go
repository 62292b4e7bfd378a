package rate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestVolume_TenCentimeterCubeIsOneLiter(t *testing.T) {
	v := Volume(Parcel{Length: 10, Width: 10, Height: 10})
	assert.True(t, v.Equal(dec("1")), "got %s", v)
}

func TestVolume_ZeroDimension(t *testing.T) {
	v := Volume(Parcel{Length: 0, Width: 30, Height: 30})
	assert.True(t, v.IsZero())
}

func TestVolume_Fractional(t *testing.T) {
	v := Volume(Parcel{Length: 12.5, Width: 8, Height: 4})
	assert.True(t, v.Equal(dec("0.4")), "got %s", v)
}

func TestLinearEstimate_NL(t *testing.T) {
	est := NewLinear()
	// 5 + 0.1*1 + 0.5*1 = 5.6
	amount := est.Estimate(NL, Parcel{Length: 10, Width: 10, Height: 10, Weight: 1})
	assert.True(t, amount.Equal(dec("5.6")), "got %s", amount)
}

func TestLinearEstimate_BE(t *testing.T) {
	est := NewLinear()
	// 6 + 0.15*8 + 0.6*2 = 8.4
	amount := est.Estimate(BE, Parcel{Length: 20, Width: 20, Height: 20, Weight: 2})
	assert.True(t, amount.Equal(dec("8.4")), "got %s", amount)
}

func TestLinearEstimate_EmptyParcelIsBaseRate(t *testing.T) {
	est := NewLinear()
	assert.True(t, est.Estimate(NL, Parcel{}).Equal(dec("5")))
	assert.True(t, est.Estimate(BE, Parcel{}).Equal(dec("6")))
}

func TestParseDestination(t *testing.T) {
	d, err := ParseDestination(" be ")
	require.NoError(t, err)
	assert.Equal(t, BE, d)

	d, err = ParseDestination("NL")
	require.NoError(t, err)
	assert.Equal(t, NL, d)

	_, err = ParseDestination("DE")
	assert.Error(t, err)
}
