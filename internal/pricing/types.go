package pricing

import "github.com/shopspring/decimal"

// Kind categorises the rule that produced a discount.
type Kind string

const (
	// KindLine marks discounts computed per line item.
	KindLine Kind = "line"
	// KindOrder marks discounts computed from the order subtotal.
	KindOrder Kind = "order"
	// KindCoupon marks discounts unlocked by a coupon code.
	KindCoupon Kind = "coupon"
)

// Item is a priced order line. Values are validated upstream (qty >= 1,
// non-negative unit price) and never mutated here.
type Item struct {
	SKU       string
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
}

// LineTotal returns qty * unit price, exact.
func (it Item) LineTotal() decimal.Decimal {
	return decimal.NewFromInt(int64(it.Qty)).Mul(it.UnitPrice)
}

// DiscountApplied is one discount produced by a rule. Amount never goes
// negative; the cap reducer may shrink it but never grows it.
type DiscountApplied struct {
	Code   string
	Kind   Kind
	Amount decimal.Decimal
}

// Totals is the immutable result of one calculation. DiscountsApplied keeps
// rule evaluation order, including entries the cap reduced to zero; callers
// filter zeroes at presentation time.
type Totals struct {
	Subtotal         decimal.Decimal
	DiscountsApplied []DiscountApplied
	DiscountTotal    decimal.Decimal
	Total            decimal.Decimal
	// CapApplied reports whether the safety cap reduced any amount.
	CapApplied bool
}
