package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart       = errors.New("cart has no items")
	ErrTooManyItems    = fmt.Errorf("cart has more than %d items", MaxItems)
	ErrUnknownMode     = errors.New("unknown shipping mode")
	ErrMissingCombined = errors.New("together mode requires combined package dimensions")
)

// ItemTooLargeError aborts an evaluation when an item exceeds the largest
// logistics tier. Index is 1-based.
type ItemTooLargeError struct {
	Index  int
	Volume decimal.Decimal
}

func (e *ItemTooLargeError) Error() string {
	return fmt.Sprintf("Item %d is too large for logistics program shipping (volume > %sL).", e.Index, largeMaxLiters)
}
