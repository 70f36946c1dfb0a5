package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/order-totals/internal/money"
	"github.com/noah-isme/order-totals/internal/obs"
	"github.com/noah-isme/order-totals/internal/pricing"
	"github.com/noah-isme/order-totals/internal/repo"
)

// Repository abstracts order persistence for the service.
type Repository interface {
	Create(ctx context.Context, params repo.CreateOrderParams) (repo.OrderDoc, error)
	Get(ctx context.Context, id string) (repo.OrderDoc, error)
}

// Input is a validated order computation request.
type Input struct {
	CustomerID string
	Items      []pricing.Item
	CouponCode *string
}

// DiscountView is a rendered discount entry.
type DiscountView struct {
	Code   string `json:"code"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// TotalsView is the rendered totals block. Each field is quantized
// independently; nothing is derived from already-rounded values.
type TotalsView struct {
	Subtotal         string         `json:"subtotal"`
	DiscountsApplied []DiscountView `json:"discountsApplied"`
	DiscountTotal    string         `json:"discountTotal"`
	Total            string         `json:"total"`
}

// ItemView is a rendered order line.
type ItemView struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	UnitPrice string `json:"unitPrice"`
}

// View is the full rendered shape of a stored order.
type View struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	Items      []ItemView `json:"items"`
	CouponCode *string    `json:"couponCode,omitempty"`
	TotalsView
	CreatedAt time.Time `json:"createdAt"`
}

// Service computes order totals and persists created orders.
type Service struct {
	Repo   Repository
	Cache  *Cache
	Logger zerolog.Logger
}

// Preview runs the pricing pipeline and renders the totals without touching
// storage.
func (s *Service) Preview(in Input) TotalsView {
	totals := pricing.Calculate(in.Items, couponOrEmpty(in.CouponCode))
	if totals.CapApplied && obs.DiscountCapEngagedTotal != nil {
		obs.DiscountCapEngagedTotal.Inc()
	}
	if obs.OrderPreviewTotal != nil {
		obs.OrderPreviewTotal.WithLabelValues("ok").Inc()
	}
	return renderTotals(totals)
}

// Create computes totals, persists the rendered document and returns the
// stored view.
func (s *Service) Create(ctx context.Context, in Input) (View, error) {
	if s.Repo == nil {
		return View{}, errors.New("order repository not configured")
	}

	totals := pricing.Calculate(in.Items, couponOrEmpty(in.CouponCode))
	if totals.CapApplied && obs.DiscountCapEngagedTotal != nil {
		obs.DiscountCapEngagedTotal.Inc()
	}
	rendered := renderTotals(totals)

	items := make([]repo.ItemDoc, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, repo.ItemDoc{
			SKU:       it.SKU,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: money.Format(money.Quantize(it.UnitPrice)),
		})
	}
	discounts := make([]repo.DiscountDoc, 0, len(rendered.DiscountsApplied))
	for _, d := range rendered.DiscountsApplied {
		discounts = append(discounts, repo.DiscountDoc{Code: d.Code, Type: d.Type, Amount: d.Amount})
	}

	doc, err := s.Repo.Create(ctx, repo.CreateOrderParams{
		CustomerID:       in.CustomerID,
		CouponCode:       in.CouponCode,
		Items:            items,
		Subtotal:         rendered.Subtotal,
		DiscountsApplied: discounts,
		DiscountTotal:    rendered.DiscountTotal,
		Total:            rendered.Total,
	})
	if err != nil {
		if obs.OrderCreateTotal != nil {
			obs.OrderCreateTotal.WithLabelValues("error").Inc()
		}
		return View{}, fmt.Errorf("persist order: %w", err)
	}

	view := viewFromDoc(doc)
	if err := s.Cache.Set(ctx, view); err != nil {
		s.Logger.Warn().Err(err).Str("order_id", view.ID).Msg("cache order view")
	}
	if obs.OrderCreateTotal != nil {
		obs.OrderCreateTotal.WithLabelValues("ok").Inc()
	}
	s.Logger.Info().
		Str("order_id", view.ID).
		Str("customer_id", view.CustomerID).
		Str("total", view.Total).
		Msg("order created")
	return view, nil
}

// Get loads a stored order, preferring the cache.
func (s *Service) Get(ctx context.Context, id string) (View, error) {
	if view, ok, err := s.Cache.Get(ctx, id); err == nil && ok {
		return view, nil
	} else if err != nil {
		s.Logger.Warn().Err(err).Str("order_id", id).Msg("read order cache")
	}

	if s.Repo == nil {
		return View{}, errors.New("order repository not configured")
	}
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	view := viewFromDoc(doc)
	if err := s.Cache.Set(ctx, view); err != nil {
		s.Logger.Warn().Err(err).Str("order_id", id).Msg("cache order view")
	}
	return view, nil
}

// renderTotals quantizes every monetary field independently and drops
// zero-amount discount entries from the rendered list.
func renderTotals(totals pricing.Totals) TotalsView {
	discounts := make([]DiscountView, 0, len(totals.DiscountsApplied))
	for _, d := range totals.DiscountsApplied {
		if !d.Amount.IsPositive() {
			continue
		}
		discounts = append(discounts, DiscountView{
			Code:   d.Code,
			Type:   string(d.Kind),
			Amount: money.Format(money.Quantize(d.Amount)),
		})
	}
	return TotalsView{
		Subtotal:         money.Format(money.Quantize(totals.Subtotal)),
		DiscountsApplied: discounts,
		DiscountTotal:    money.Format(money.Quantize(totals.DiscountTotal)),
		Total:            money.Format(money.Quantize(totals.Total)),
	}
}

func viewFromDoc(doc repo.OrderDoc) View {
	items := make([]ItemView, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, ItemView{SKU: it.SKU, Name: it.Name, Qty: it.Qty, UnitPrice: it.UnitPrice})
	}
	discounts := make([]DiscountView, 0, len(doc.DiscountsApplied))
	for _, d := range doc.DiscountsApplied {
		discounts = append(discounts, DiscountView{Code: d.Code, Type: d.Type, Amount: d.Amount})
	}
	return View{
		ID:         doc.ID,
		CustomerID: doc.CustomerID,
		Items:      items,
		CouponCode: doc.CouponCode,
		TotalsView: TotalsView{
			Subtotal:         doc.Subtotal,
			DiscountsApplied: discounts,
			DiscountTotal:    doc.DiscountTotal,
			Total:            doc.Total,
		},
		CreatedAt: doc.CreatedAt,
	}
}

func couponOrEmpty(code *string) string {
	if code == nil {
		return ""
	}
	return *code
}
