package pricing

import "github.com/shopspring/decimal"

// Subtotal sums qty * unit price over all items, exact.
func Subtotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Calculate runs the rule pipeline once over the items, applies the safety
// cap and assembles the totals. It is a pure function: no I/O, no shared
// state, identical inputs always yield identical results. All arithmetic is
// exact; callers round at presentation boundaries only.
func Calculate(items []Item, couponCode string) Totals {
	subtotal := Subtotal(items)
	in := Input{Items: items, Subtotal: subtotal, CouponCode: couponCode}

	var discounts []DiscountApplied
	for _, rule := range Rules() {
		discounts = append(discounts, rule.Eval(in)...)
	}

	cap := subtotal.Mul(capRate)
	capped := CapDiscounts(discounts, cap)

	discountTotal := sumAmounts(discounts)
	if discountTotal.LessThan(decimal.Zero) {
		discountTotal = decimal.Zero
	}
	total := subtotal.Sub(discountTotal)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:         subtotal,
		DiscountsApplied: discounts,
		DiscountTotal:    discountTotal,
		Total:            total,
		CapApplied:       capped,
	}
}
