package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fulfillcalc/internal/rate"
)

// MaxItems is the largest cart Evaluate accepts.
const MaxItems = 10

// ShippingMode chooses how a multi-item cart is self-shipped.
type ShippingMode string

const (
	Separate ShippingMode = "separate"
	Together ShippingMode = "together"
)

// Option labels reported in a Decision.
const (
	OptionLogistics           = "logistics-program"
	OptionSelfManaged         = "self-managed"
	OptionSelfManagedSeparate = "self-managed (separate)"
	OptionSelfManagedTogether = "self-managed (together)"
)

// Item is one article in the cart. SalesPrice does not affect any fee.
type Item struct {
	rate.Parcel `yaml:",inline"`

	SalesPrice float64 `json:"sales_price" yaml:"sales_price" validate:"gte=0,finite"`
	Special    bool    `json:"special" yaml:"special"`
}

// Request is a single calculation run. Mode and Combined are ignored for a
// one-item cart, and are only validated when the cart has more than one item.
type Request struct {
	Items       []Item           `json:"items" yaml:"items" validate:"required,min=1,max=10,dive"`
	Destination rate.Destination `json:"destination" yaml:"destination" validate:"required,oneof=NL BE"`
	Labeling    bool             `json:"labeling" yaml:"labeling"`
	Mode        ShippingMode     `json:"mode,omitempty" yaml:"mode,omitempty"`
	Combined    *rate.Parcel     `json:"combined,omitempty" yaml:"combined,omitempty"`
}

// ItemQuote is the per-item breakdown of a run.
type ItemQuote struct {
	Index       int             `json:"index"`
	Volume      decimal.Decimal `json:"volume_liters"`
	Size        SizeCategory    `json:"size"`
	Fee         FeeQuote        `json:"fee"`
	SelfManaged decimal.Decimal `json:"self_managed"`
}

// Decision is the outcome of one run.
type Decision struct {
	LogisticsTotal   decimal.Decimal `json:"logistics_total"`
	SelfManagedTotal decimal.Decimal `json:"self_managed_total"`
	SelfManagedLabel string          `json:"self_managed_label"`
	Cheaper          string          `json:"cheaper_option"`
	Items            []ItemQuote     `json:"items"`
}

// LogisticsCheaper reports whether the logistics program won.
func (d Decision) LogisticsCheaper() bool {
	return d.Cheaper == OptionLogistics
}

// Evaluator compares the logistics program against self-managed shipping.
// It holds no mutable state.
type Evaluator struct {
	est rate.Estimator
}

// NewEvaluator uses est for self-managed estimates, or the linear rate when nil.
func NewEvaluator(est rate.Estimator) *Evaluator {
	if est == nil {
		est = rate.NewLinear()
	}
	return &Evaluator{est: est}
}

var defaultEvaluator = NewEvaluator(nil)

// Evaluate runs req through the default evaluator.
func Evaluate(req Request) (Decision, error) {
	return defaultEvaluator.Evaluate(req)
}

// Evaluate prices every item, aggregates both options and picks the cheaper
// one. The first item above the largest tier fails the whole run with an
// *ItemTooLargeError; no partial Decision is returned.
func (e *Evaluator) Evaluate(req Request) (Decision, error) {
	mode, err := resolveMode(req)
	if err != nil {
		return Decision{}, err
	}

	quotes := make([]ItemQuote, 0, len(req.Items))
	perItemTotal := decimal.Zero
	maxPerShipment := decimal.Zero
	for i, it := range req.Items {
		volume := rate.Volume(it.Parcel)
		size := Classify(volume)
		if size == TooLarge {
			return Decision{}, &ItemTooLargeError{Index: i + 1, Volume: volume}
		}
		fee, err := LookupFee(size, req.Destination, it.Special, req.Labeling)
		if err != nil {
			return Decision{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		perItemTotal = perItemTotal.Add(fee.PerItem)
		maxPerShipment = decimal.Max(maxPerShipment, fee.PerShipment)
		quotes = append(quotes, ItemQuote{
			Index:       i + 1,
			Volume:      volume,
			Size:        size,
			Fee:         fee,
			SelfManaged: e.est.Estimate(req.Destination, it.Parcel),
		})
	}

	d := Decision{
		LogisticsTotal: perItemTotal.Add(maxPerShipment),
		Items:          quotes,
	}

	switch {
	case len(quotes) == 1:
		d.SelfManagedTotal = quotes[0].SelfManaged
		d.SelfManagedLabel = OptionSelfManaged
	case mode == Together:
		d.SelfManagedTotal = e.est.Estimate(req.Destination, *req.Combined)
		d.SelfManagedLabel = OptionSelfManagedTogether
	default:
		sum := decimal.Zero
		for _, q := range quotes {
			sum = sum.Add(q.SelfManaged)
		}
		d.SelfManagedTotal = sum
		d.SelfManagedLabel = OptionSelfManagedSeparate
	}

	// Ties go to self-managed shipping.
	if d.LogisticsTotal.LessThan(d.SelfManagedTotal) {
		d.Cheaper = OptionLogistics
	} else {
		d.Cheaper = d.SelfManagedLabel
	}
	return d, nil
}

func resolveMode(req Request) (ShippingMode, error) {
	switch {
	case len(req.Items) == 0:
		return "", ErrEmptyCart
	case len(req.Items) > MaxItems:
		return "", ErrTooManyItems
	case len(req.Items) == 1:
		return "", nil
	}
	switch req.Mode {
	case "", Separate:
		return Separate, nil
	case Together:
		if req.Combined == nil {
			return "", ErrMissingCombined
		}
		return Together, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
}
