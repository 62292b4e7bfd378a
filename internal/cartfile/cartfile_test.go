package cartfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillcalc/internal/pricing"
	"fulfillcalc/internal/rate"
	"fulfillcalc/internal/validation"
)

const yamlCart = `
destination: be
labeling: true
mode: together
combined: {length: 20, width: 20, height: 20, weight: 2}
items:
  - {length: 10, width: 10, height: 10, weight: 1, sales_price: 20}
  - {length: 12, width: 8, height: 4, weight: 0.4, sales_price: 9.95, special: true}
`

func TestParse_YAML(t *testing.T) {
	req, err := Parse([]byte(yamlCart))
	require.NoError(t, err)
	assert.Equal(t, rate.BE, req.Destination)
	assert.True(t, req.Labeling)
	assert.Equal(t, pricing.Together, req.Mode)
	require.NotNil(t, req.Combined)
	assert.Equal(t, 2.0, req.Combined.Weight)
	require.Len(t, req.Items, 2)
	assert.Equal(t, 10.0, req.Items[0].Length)
	assert.Equal(t, 9.95, req.Items[1].SalesPrice)
	assert.True(t, req.Items[1].Special)
}

func TestParse_JSON(t *testing.T) {
	req, err := Parse([]byte(`{"destination":"NL","items":[{"length":10,"width":10,"height":10,"weight":1}]}`))
	require.NoError(t, err)
	assert.Equal(t, rate.NL, req.Destination)
	require.Len(t, req.Items, 1)
	assert.Equal(t, 1.0, req.Items[0].Weight)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("destination: NL\ncolour: red\nitems:\n  - {length: 1}\n"))
	assert.Error(t, err)
}

func TestParse_ValidationErrors(t *testing.T) {
	_, err := Parse([]byte("destination: DE\nitems:\n  - {length: -1, width: 1, height: 1}\n"))
	var fields validation.FieldErrors
	require.True(t, errors.As(err, &fields), "got %v", err)
	assert.Contains(t, fields, "destination")
	assert.Contains(t, fields, "items[0].length")
}

func TestParse_InfiniteDimension(t *testing.T) {
	_, err := Parse([]byte("destination: NL\nitems: [{length: .inf, width: 1, height: 1, weight: 1}]\n"))
	var fields validation.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "items[0].length")
}

func TestParse_SingleItemWithUnusedMode(t *testing.T) {
	req, err := Parse([]byte("destination: NL\nmode: drone\nitems: [{length: 1, width: 1, height: 1}]\n"))
	require.NoError(t, err)
	assert.Len(t, req.Items, 1)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCart), 0o600))

	req, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, req.Items, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
