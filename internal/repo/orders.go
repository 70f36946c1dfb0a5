package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrOrderNotFound is returned when no order matches the requested id.
var ErrOrderNotFound = errors.New("order not found")

// ItemDoc is a persisted order line with its price already rendered.
type ItemDoc struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	UnitPrice string `json:"unitPrice"`
}

// DiscountDoc is a persisted discount entry with its amount already rendered.
type DiscountDoc struct {
	Code   string `json:"code"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// OrderDoc is the stored shape of a created order. Monetary fields hold the
// rendered two-decimal strings, not raw decimals: what was shown to the
// client at creation time is exactly what is read back later.
type OrderDoc struct {
	ID               string
	CustomerID       string
	CouponCode       *string
	Items            []ItemDoc
	Subtotal         string
	DiscountsApplied []DiscountDoc
	DiscountTotal    string
	Total            string
	CreatedAt        time.Time
}

// CreateOrderParams carries everything persisted for a new order.
type CreateOrderParams struct {
	CustomerID       string
	CouponCode       *string
	Items            []ItemDoc
	Subtotal         string
	DiscountsApplied []DiscountDoc
	DiscountTotal    string
	Total            string
}

// Orders persists and loads order documents in Postgres.
type Orders struct {
	Pool *pgxpool.Pool
}

// Create inserts a new order with a generated id and server-assigned
// creation timestamp and returns the stored document.
func (r Orders) Create(ctx context.Context, params CreateOrderParams) (OrderDoc, error) {
	if r.Pool == nil {
		return OrderDoc{}, errors.New("orders repo not configured")
	}
	itemsJSON, err := json.Marshal(params.Items)
	if err != nil {
		return OrderDoc{}, fmt.Errorf("marshal items: %w", err)
	}
	discountsJSON, err := json.Marshal(params.DiscountsApplied)
	if err != nil {
		return OrderDoc{}, fmt.Errorf("marshal discounts: %w", err)
	}

	id := uuid.NewString()
	var createdAt time.Time
	err = r.Pool.QueryRow(ctx, `
		INSERT INTO orders (id, customer_id, coupon_code, items, subtotal, discounts_applied, discount_total, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		id, params.CustomerID, params.CouponCode, itemsJSON, params.Subtotal, discountsJSON, params.DiscountTotal, params.Total,
	).Scan(&createdAt)
	if err != nil {
		return OrderDoc{}, fmt.Errorf("insert order: %w", err)
	}

	return OrderDoc{
		ID:               id,
		CustomerID:       params.CustomerID,
		CouponCode:       params.CouponCode,
		Items:            params.Items,
		Subtotal:         params.Subtotal,
		DiscountsApplied: params.DiscountsApplied,
		DiscountTotal:    params.DiscountTotal,
		Total:            params.Total,
		CreatedAt:        createdAt,
	}, nil
}

// Get loads an order by id. A malformed id behaves like a missing one.
func (r Orders) Get(ctx context.Context, id string) (OrderDoc, error) {
	if r.Pool == nil {
		return OrderDoc{}, errors.New("orders repo not configured")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return OrderDoc{}, ErrOrderNotFound
	}

	var (
		doc           OrderDoc
		itemsJSON     []byte
		discountsJSON []byte
	)
	err = r.Pool.QueryRow(ctx, `
		SELECT id, customer_id, coupon_code, items, subtotal, discounts_applied, discount_total, total, created_at
		FROM orders WHERE id = $1`,
		parsed.String(),
	).Scan(&doc.ID, &doc.CustomerID, &doc.CouponCode, &itemsJSON, &doc.Subtotal, &discountsJSON, &doc.DiscountTotal, &doc.Total, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return OrderDoc{}, ErrOrderNotFound
		}
		return OrderDoc{}, fmt.Errorf("select order: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &doc.Items); err != nil {
		return OrderDoc{}, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal(discountsJSON, &doc.DiscountsApplied); err != nil {
		return OrderDoc{}, fmt.Errorf("unmarshal discounts: %w", err)
	}
	return doc, nil
}
