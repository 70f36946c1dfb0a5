package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/order-totals/internal/pricing"
)

func item(sku string, qty int, unitPrice string) pricing.Item {
	return pricing.Item{SKU: sku, Name: sku, Qty: qty, UnitPrice: decimal.RequireFromString(unitPrice)}
}

func amounts(discounts []pricing.DiscountApplied) []string {
	out := make([]string, 0, len(discounts))
	for _, d := range discounts {
		out = append(out, d.Amount.String())
	}
	return out
}

func codes(discounts []pricing.DiscountApplied) []string {
	out := make([]string, 0, len(discounts))
	for _, d := range discounts {
		out = append(out, d.Code)
	}
	return out
}

func TestBulkAppliesFromQtyTen(t *testing.T) {
	totals := pricing.Calculate([]pricing.Item{item("A", 10, "3.50")}, "")
	require.True(t, totals.Subtotal.Equal(decimal.RequireFromString("35.00")))
	require.Len(t, totals.DiscountsApplied, 1)
	require.Equal(t, pricing.CodeBulk, totals.DiscountsApplied[0].Code)
	require.Equal(t, pricing.KindLine, totals.DiscountsApplied[0].Kind)
	require.True(t, totals.DiscountsApplied[0].Amount.Equal(decimal.RequireFromString("3.50")))
	require.True(t, totals.Total.Equal(decimal.RequireFromString("31.50")))
	require.False(t, totals.CapApplied)
}

func TestBulkBelowThresholdEmitsNothing(t *testing.T) {
	totals := pricing.Calculate([]pricing.Item{item("A", 9, "3.50")}, "")
	require.Empty(t, totals.DiscountsApplied)
	require.True(t, totals.DiscountTotal.IsZero())
}

func TestOrderFlatFromSubtotalHundred(t *testing.T) {
	totals := pricing.Calculate([]pricing.Item{item("A", 1, "100.00")}, "")
	require.Equal(t, []string{pricing.CodeOrder}, codes(totals.DiscountsApplied))
	require.True(t, totals.DiscountTotal.Equal(decimal.RequireFromString("5.00")))
	require.True(t, totals.Total.Equal(decimal.RequireFromString("95.00")))

	// Flat regardless of how far above 100 the subtotal is.
	huge := pricing.Calculate([]pricing.Item{item("A", 1, "9000.00")}, "")
	require.True(t, huge.DiscountTotal.Equal(decimal.RequireFromString("5.00")))
}

func TestCouponCappedAtTwenty(t *testing.T) {
	totals := pricing.Calculate([]pricing.Item{item("A", 1, "200.00")}, "WELCOME15")
	var coupon *pricing.DiscountApplied
	for i := range totals.DiscountsApplied {
		if totals.DiscountsApplied[i].Code == pricing.CodeCoupon {
			coupon = &totals.DiscountsApplied[i]
		}
	}
	require.NotNil(t, coupon)
	require.Equal(t, pricing.KindCoupon, coupon.Kind)
	require.True(t, coupon.Amount.Equal(decimal.RequireFromString("20.00")))
}

func TestCouponMismatchIgnored(t *testing.T) {
	totals := pricing.Calculate([]pricing.Item{item("A", 1, "200.00")}, "OTHER")
	require.Equal(t, []string{pricing.CodeOrder}, codes(totals.DiscountsApplied))

	lower := pricing.Calculate([]pricing.Item{item("A", 1, "200.00")}, "welcome15")
	require.Equal(t, []string{pricing.CodeOrder}, codes(lower.DiscountsApplied))
}

func TestCombinedRulesKeepEvaluationOrder(t *testing.T) {
	items := []pricing.Item{item("A1", 10, "3.50"), item("B2", 2, "50.00")}
	totals := pricing.Calculate(items, "WELCOME15")

	require.True(t, totals.Subtotal.Equal(decimal.RequireFromString("135.00")))
	require.Equal(t, []string{pricing.CodeBulk, pricing.CodeOrder, pricing.CodeCoupon}, codes(totals.DiscountsApplied))
	require.Equal(t, []string{"3.5", "5", "20"}, amounts(totals.DiscountsApplied))
	require.True(t, totals.DiscountTotal.Equal(decimal.RequireFromString("28.50")))
	require.True(t, totals.Total.Equal(decimal.RequireFromString("106.50")))
	// cap = 40.50, sum = 28.50, so the reducer must not engage
	require.False(t, totals.CapApplied)
}

func TestBulkEntriesFollowItemOrder(t *testing.T) {
	a := item("A", 10, "1.00")
	b := item("B", 12, "2.00")

	first := pricing.Calculate([]pricing.Item{a, b}, "")
	second := pricing.Calculate([]pricing.Item{b, a}, "")

	require.True(t, first.Subtotal.Equal(second.Subtotal))
	require.True(t, first.DiscountTotal.Equal(second.DiscountTotal))
	require.Equal(t, []string{"1", "2.4"}, amounts(first.DiscountsApplied))
	require.Equal(t, []string{"2.4", "1"}, amounts(second.DiscountsApplied))
}

func TestCalculateIsPure(t *testing.T) {
	items := []pricing.Item{item("A1", 10, "3.50"), item("B2", 2, "50.00")}

	first := pricing.Calculate(items, "WELCOME15")
	second := pricing.Calculate(items, "WELCOME15")

	require.Equal(t, codes(first.DiscountsApplied), codes(second.DiscountsApplied))
	require.Equal(t, amounts(first.DiscountsApplied), amounts(second.DiscountsApplied))
	require.True(t, first.Subtotal.Equal(second.Subtotal))
	require.True(t, first.Total.Equal(second.Total))

	// The input items themselves must be untouched.
	require.Equal(t, 10, items[0].Qty)
	require.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("3.50")))
}

func TestDiscountsNeverExceedCap(t *testing.T) {
	// Single oversized bulk line: rules alone would give 10% of subtotal,
	// well under the 30% cap, so push harder with the coupon and order rules.
	items := []pricing.Item{item("A", 10, "10.00")}
	totals := pricing.Calculate(items, "WELCOME15")

	cap := totals.Subtotal.Mul(decimal.RequireFromString("0.30"))
	require.True(t, totals.DiscountTotal.LessThanOrEqual(cap))
	require.True(t, totals.Total.GreaterThanOrEqual(decimal.Zero))
}

func TestZeroSubtotalNullsAllDiscounts(t *testing.T) {
	totals := pricing.Calculate([]pricing.Item{item("FREE", 10, "0.00")}, "WELCOME15")
	require.True(t, totals.Subtotal.IsZero())
	for _, d := range totals.DiscountsApplied {
		require.True(t, d.Amount.IsZero(), "discount %s should be nulled", d.Code)
	}
	require.True(t, totals.DiscountTotal.IsZero())
	require.True(t, totals.Total.IsZero())
}

func TestSubtotalExact(t *testing.T) {
	items := []pricing.Item{
		item("A", 3, "0.10"),
		item("B", 7, "0.70"),
		item("C", 1, "0.01"),
	}
	require.True(t, pricing.Subtotal(items).Equal(decimal.RequireFromString("5.21")))
}
