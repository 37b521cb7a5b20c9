// Package http exposes the storefront and back-office HTTP APIs.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wali-jeweller/storefront/internal/cart"
	"github.com/wali-jeweller/storefront/internal/event"
	"github.com/wali-jeweller/storefront/pkg/httputil"
	"github.com/wali-jeweller/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	store    *cart.Store
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(store *cart.Store, producer *event.Producer, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

// cartResponse is the JSON shape of every cart endpoint response.
type cartResponse struct {
	Items     []cart.Item `json:"items"`
	Total     int64       `json:"total"`
	ItemCount int         `json:"item_count"`
	Loading   bool        `json:"loading"`
}

func (h *CartHandler) writeState(w http.ResponseWriter) {
	state := h.store.Snapshot()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse{
		Items:     state.Items,
		Total:     state.Total(),
		ItemCount: state.ItemCount(),
		Loading:   h.store.IsLoading(),
	}})
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeState(w)
}

// AddItemRequest is the JSON request body for adding a cart item.
type AddItemRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"gte=0"`
	Image    string `json:"image"`
	Slug     string `json:"slug"`
	Quantity int    `json:"quantity"`
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	item := cart.Item{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
		Slug:  req.Slug,
	}
	if err := h.store.AddItem(r.Context(), item, req.Quantity); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.producer.PublishCartUpdated(r.Context(), h.store.Snapshot())
	h.writeState(w)
}

// UpdateQuantityRequest is the JSON request body for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PUT /api/v1/cart/items/{id}. A quantity of zero or
// below removes the line item.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.store.UpdateQuantity(r.Context(), id, req.Quantity); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.producer.PublishCartUpdated(r.Context(), h.store.Snapshot())
	h.writeState(w)
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}. Removing an absent item
// succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.RemoveItem(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.producer.PublishCartUpdated(r.Context(), h.store.Snapshot())
	h.writeState(w)
}

// ClearCart handles DELETE /api/v1/cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.producer.PublishCartCleared(r.Context())
	h.writeState(w)
}
