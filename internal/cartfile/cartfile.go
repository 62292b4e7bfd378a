// Package cartfile reads calculation requests from YAML or JSON files.
package cartfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"fulfillcalc/internal/pricing"
	"fulfillcalc/internal/validation"
)

// Load reads and validates the cart at path. "-" reads stdin.
func Load(path string) (pricing.Request, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return pricing.Request{}, fmt.Errorf("read cart: %w", err)
	}
	return Parse(data)
}

// Parse decodes a cart document. JSON is valid YAML, so one decoder covers both.
func Parse(data []byte) (pricing.Request, error) {
	var req pricing.Request
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return pricing.Request{}, errors.New("parse cart: empty document")
		}
		return pricing.Request{}, fmt.Errorf("parse cart: %w", err)
	}
	if err := validation.Struct(req); err != nil {
		return pricing.Request{}, err
	}
	return req, nil
}
