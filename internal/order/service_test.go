package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/order-totals/internal/order"
	"github.com/noah-isme/order-totals/internal/pricing"
	"github.com/noah-isme/order-totals/internal/repo"
)

type stubRepo struct {
	docs    map[string]repo.OrderDoc
	creates int
}

func newStubRepo() *stubRepo {
	return &stubRepo{docs: map[string]repo.OrderDoc{}}
}

func (s *stubRepo) Create(_ context.Context, params repo.CreateOrderParams) (repo.OrderDoc, error) {
	s.creates++
	doc := repo.OrderDoc{
		ID:               uuid.NewString(),
		CustomerID:       params.CustomerID,
		CouponCode:       params.CouponCode,
		Items:            params.Items,
		Subtotal:         params.Subtotal,
		DiscountsApplied: params.DiscountsApplied,
		DiscountTotal:    params.DiscountTotal,
		Total:            params.Total,
		CreatedAt:        time.Now().UTC(),
	}
	s.docs[doc.ID] = doc
	return doc, nil
}

func (s *stubRepo) Get(_ context.Context, id string) (repo.OrderDoc, error) {
	doc, ok := s.docs[id]
	if !ok {
		return repo.OrderDoc{}, repo.ErrOrderNotFound
	}
	return doc, nil
}

func testItem(sku string, qty int, unitPrice string) pricing.Item {
	return pricing.Item{SKU: sku, Name: sku, Qty: qty, UnitPrice: decimal.RequireFromString(unitPrice)}
}

func coupon(code string) *string {
	return &code
}

func TestPreviewRendersQuantizedFields(t *testing.T) {
	svc := &order.Service{Logger: zerolog.Nop()}
	view := svc.Preview(order.Input{
		Items:      []pricing.Item{testItem("A1", 10, "3.50"), testItem("B2", 2, "50.00")},
		CouponCode: coupon("WELCOME15"),
	})

	require.Equal(t, "135.00", view.Subtotal)
	require.Equal(t, "28.50", view.DiscountTotal)
	require.Equal(t, "106.50", view.Total)
	require.Len(t, view.DiscountsApplied, 3)
	require.Equal(t, "BULK10", view.DiscountsApplied[0].Code)
	require.Equal(t, "line", view.DiscountsApplied[0].Type)
	require.Equal(t, "3.50", view.DiscountsApplied[0].Amount)
	require.Equal(t, "ORDER5", view.DiscountsApplied[1].Code)
	require.Equal(t, "WELCOME15", view.DiscountsApplied[2].Code)
	require.Equal(t, "20.00", view.DiscountsApplied[2].Amount)
}

func TestPreviewFiltersZeroAmounts(t *testing.T) {
	svc := &order.Service{Logger: zerolog.Nop()}
	view := svc.Preview(order.Input{
		Items:      []pricing.Item{testItem("FREE", 10, "0.00")},
		CouponCode: coupon("WELCOME15"),
	})

	require.Equal(t, "0.00", view.Subtotal)
	require.Empty(t, view.DiscountsApplied)
	require.Equal(t, "0.00", view.Total)
}

func TestCreatePersistsRenderedDocument(t *testing.T) {
	repoStub := newStubRepo()
	svc := &order.Service{Repo: repoStub, Logger: zerolog.Nop()}

	view, err := svc.Create(context.Background(), order.Input{
		CustomerID: "cust_2",
		Items:      []pricing.Item{testItem("A1", 1, "100.00")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, view.ID)
	require.Equal(t, "cust_2", view.CustomerID)
	require.Equal(t, "100.00", view.Subtotal)
	require.Equal(t, "5.00", view.DiscountTotal)
	require.Equal(t, "95.00", view.Total)
	require.Len(t, view.Items, 1)
	require.Equal(t, "100.00", view.Items[0].UnitPrice)
	require.False(t, view.CreatedAt.IsZero())

	stored, err := svc.Get(context.Background(), view.ID)
	require.NoError(t, err)
	require.Equal(t, view.ID, stored.ID)
	require.Equal(t, "95.00", stored.Total)
}

func TestGetUnknownOrder(t *testing.T) {
	svc := &order.Service{Repo: newStubRepo(), Logger: zerolog.Nop()}
	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repo.ErrOrderNotFound)
}
