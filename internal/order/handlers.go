package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/order-totals/internal/common"
	"github.com/noah-isme/order-totals/internal/money"
	"github.com/noah-isme/order-totals/internal/pricing"
	"github.com/noah-isme/order-totals/internal/repo"
)

// Handler exposes the order HTTP endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type itemPayload struct {
	SKU       string `json:"sku" validate:"required"`
	Name      string `json:"name"`
	Qty       int    `json:"qty" validate:"required,min=1"`
	UnitPrice string `json:"unitPrice" validate:"required"`
}

type orderPayload struct {
	CustomerID string        `json:"customerId" validate:"required"`
	Items      []itemPayload `json:"items" validate:"required,min=1,dive"`
	CouponCode *string       `json:"couponCode"`
}

// Preview computes totals for the submitted order without persisting it.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	in, appErr := h.decodeInput(r)
	if appErr != nil {
		common.RenderError(w, appErr)
		return
	}
	common.JSONData(w, http.StatusOK, h.Svc.Preview(in))
}

// Create computes totals, persists the order and returns the stored view.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	in, appErr := h.decodeInput(r)
	if appErr != nil {
		common.RenderError(w, appErr)
		return
	}
	view, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, view)
}

// Get returns a stored order by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	view, err := h.Svc.Get(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.RenderError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, view)
}

// decodeInput parses and validates the request payload, converting prices to
// exact decimals. Validation failures never reach the pricing core.
func (h *Handler) decodeInput(r *http.Request) (Input, *common.AppError) {
	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return Input{}, common.NewAppError("BAD_REQUEST", "invalid payload", http.StatusBadRequest, err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			return Input{}, common.NewAppError("VALIDATION", "invalid order", http.StatusBadRequest, err).
				WithDetails(err.Error())
		}
	}

	items := make([]pricing.Item, 0, len(payload.Items))
	for _, it := range payload.Items {
		price, err := money.Parse(it.UnitPrice)
		if err != nil {
			return Input{}, common.NewAppError("VALIDATION", "invalid unit price", http.StatusBadRequest, err).
				WithDetails(map[string]any{"sku": it.SKU, "unitPrice": it.UnitPrice})
		}
		if price.IsNegative() {
			return Input{}, common.NewAppError("VALIDATION", "unit price must not be negative", http.StatusBadRequest, nil).
				WithDetails(map[string]any{"sku": it.SKU, "unitPrice": it.UnitPrice})
		}
		items = append(items, pricing.Item{SKU: it.SKU, Name: it.Name, Qty: it.Qty, UnitPrice: price})
	}

	return Input{CustomerID: payload.CustomerID, Items: items, CouponCode: payload.CouponCode}, nil
}
