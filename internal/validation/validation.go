package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"fulfillcalc/internal/pricing"
)

// FieldErrors maps a JSON field path to a human-readable message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, f[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("finite", finite)
	v.RegisterStructValidation(requestRules, pricing.Request{})
	return v
}

// finite rejects NaN and the infinities, which parse as valid floats from
// YAML, flags and query strings.
func finite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// requestRules checks the shipping mode only for multi-item carts, where
// it is actually used.
func requestRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(pricing.Request)
	if len(req.Items) < 2 {
		return
	}
	switch req.Mode {
	case "", pricing.Separate, pricing.Together:
	default:
		sl.ReportError(req.Mode, "mode", "Mode", "oneof", "separate together")
	}
}

// Struct validates obj against its `validate` tags. Rule failures come back
// as FieldErrors; anything else is returned unchanged.
func Struct(obj any) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe)
		fields[field] = message(field, fe)
	}
	return fields
}

// fieldPath drops the top-level struct name: "Request.items[0].length" -> "items[0].length".
func fieldPath(fe validator.FieldError) string {
	// Embedded parcels show up under their type name.
	ns := strings.ReplaceAll(fe.Namespace(), ".Parcel.", ".")
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "finite":
		return fmt.Sprintf("%s must be a finite number", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
