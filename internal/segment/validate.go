package segment

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// The calculators themselves never validate; the model is deliberately
// permissive and out-of-range rates simply flow through the arithmetic.
// Strict mode is an opt-in boundary check for callers that prefer a
// rejection over a nonsensical projection.

var validate = validator.New()

// ValidateJewelry reports the first set of out-of-range fields in a
// jewelry snapshot. Only used when strict input mode is enabled.
func ValidateJewelry(cfg JewelryConfig) error {
	return wrapValidation("jewelry", validate.Struct(cfg))
}

// ValidateRetail reports out-of-range fields in a retail snapshot.
func ValidateRetail(cfg RetailConfig) error {
	return wrapValidation("retail", validate.Struct(cfg))
}

// ValidateYoga reports out-of-range fields in a yoga snapshot.
func ValidateYoga(cfg YogaConfig) error {
	return wrapValidation("yoga", validate.Struct(cfg))
}

func wrapValidation(segment string, err error) error {
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return fmt.Errorf("segment %s: field %s fails %q", segment, first.Namespace(), first.Tag())
	}
	return fmt.Errorf("segment %s: %w", segment, err)
}
