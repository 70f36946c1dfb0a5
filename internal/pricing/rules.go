package pricing

import "github.com/shopspring/decimal"

const (
	// CodeBulk is the per-item bulk quantity discount.
	CodeBulk = "BULK10"
	// CodeOrder is the flat discount for large subtotals.
	CodeOrder = "ORDER5"
	// CodeCoupon is the only coupon code the pipeline recognises.
	CodeCoupon = "WELCOME15"
)

var (
	bulkMinQty       = 10
	bulkRate         = decimal.RequireFromString("0.10")
	orderMinSubtotal = decimal.RequireFromString("100")
	orderFlatAmount  = decimal.RequireFromString("5.00")
	couponRate       = decimal.RequireFromString("0.15")
	couponMaxAmount  = decimal.RequireFromString("20.00")
	capRate          = decimal.RequireFromString("0.30")
)

// Input is the read-only context every rule evaluates against. Rules are
// independent: none of them sees another rule's output.
type Input struct {
	Items      []Item
	Subtotal   decimal.Decimal
	CouponCode string
}

// Rule is a named, pure discount evaluator. Eval returns zero or more
// entries; it never mutates the input.
type Rule struct {
	Code string
	Kind Kind
	Eval func(in Input) []DiscountApplied
}

// Rules returns the pipeline in its fixed evaluation order: per-item bulk,
// then order subtotal, then coupon. The order also determines which entries
// the cap reducer shrinks first (the last evaluated absorbs first).
func Rules() []Rule {
	return []Rule{
		{Code: CodeBulk, Kind: KindLine, Eval: evalBulk},
		{Code: CodeOrder, Kind: KindOrder, Eval: evalOrder},
		{Code: CodeCoupon, Kind: KindCoupon, Eval: evalCoupon},
	}
}

// evalBulk emits one line discount per item with qty >= 10, worth 10% of the
// line total, in input item order. Items below threshold contribute nothing.
func evalBulk(in Input) []DiscountApplied {
	var out []DiscountApplied
	for _, it := range in.Items {
		if it.Qty < bulkMinQty {
			continue
		}
		out = append(out, DiscountApplied{
			Code:   CodeBulk,
			Kind:   KindLine,
			Amount: it.LineTotal().Mul(bulkRate),
		})
	}
	return out
}

// evalOrder emits a flat 5.00 once the subtotal reaches 100, regardless of
// how far above it goes.
func evalOrder(in Input) []DiscountApplied {
	if in.Subtotal.LessThan(orderMinSubtotal) {
		return nil
	}
	return []DiscountApplied{{Code: CodeOrder, Kind: KindOrder, Amount: orderFlatAmount}}
}

// evalCoupon emits min(subtotal*0.15, 20.00) on an exact, case-sensitive
// match of the WELCOME15 code. Unknown codes are ignored, not errors.
func evalCoupon(in Input) []DiscountApplied {
	if in.CouponCode != CodeCoupon {
		return nil
	}
	amount := in.Subtotal.Mul(couponRate)
	if amount.GreaterThan(couponMaxAmount) {
		amount = couponMaxAmount
	}
	return []DiscountApplied{{Code: CodeCoupon, Kind: KindCoupon, Amount: amount}}
}
