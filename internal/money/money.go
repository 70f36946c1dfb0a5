package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary values stay exact (arbitrary-precision base-10) through every
// calculation; rounding happens only when a value crosses a presentation
// boundary via Quantize or Format.

// Zero is the canonical zero amount.
var Zero = decimal.Zero

// ParseError reports a monetary string that could not be parsed as a decimal.
type ParseError struct {
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse money %q: %v", e.Value, e.Err)
}

// Unwrap exposes the underlying decimal parse failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts decimal text ("3.50") into an exact amount.
func Parse(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, &ParseError{Value: value, Err: err}
	}
	return d, nil
}

// Quantize rounds to two fractional digits, half away from zero.
func Quantize(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

// Format renders a fixed two-decimal string such as "106.50" or "0.00".
func Format(value decimal.Decimal) string {
	return value.StringFixed(2)
}
