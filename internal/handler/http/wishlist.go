package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wali-jeweller/storefront/internal/event"
	"github.com/wali-jeweller/storefront/internal/wishlist"
	"github.com/wali-jeweller/storefront/pkg/httputil"
	"github.com/wali-jeweller/storefront/pkg/validator"
)

// WishlistHandler handles HTTP requests for the wishlist.
type WishlistHandler struct {
	store    *wishlist.Store
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(store *wishlist.Store, producer *event.Producer, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

type wishlistResponse struct {
	Items   []wishlist.Item `json:"items"`
	Count   int             `json:"count"`
	Loading bool            `json:"loading"`
}

func (h *WishlistHandler) writeState(w http.ResponseWriter) {
	state := h.store.Snapshot()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistResponse{
		Items:   state.Items,
		Count:   state.Count(),
		Loading: h.store.IsLoading(),
	}})
}

func (h *WishlistHandler) publish(r *http.Request) {
	state := h.store.Snapshot()
	ids := make([]string, len(state.Items))
	for i, item := range state.Items {
		ids[i] = item.ID
	}
	h.producer.PublishWishlistUpdated(r.Context(), ids)
}

// GetWishlist handles GET /api/v1/wishlist.
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	h.writeState(w)
}

// SaveItemRequest is the JSON request body for saving a wishlist item.
type SaveItemRequest struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"gte=0"`
	Image string `json:"image"`
	Slug  string `json:"slug" validate:"required"`
}

// SaveItem handles POST /api/v1/wishlist/items. Saving an already-saved item
// is a no-op.
func (h *WishlistHandler) SaveItem(w http.ResponseWriter, r *http.Request) {
	var req SaveItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	item := wishlist.Item{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
		Slug:  req.Slug,
	}
	if err := h.store.Add(r.Context(), item); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publish(r)
	h.writeState(w)
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{id}.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Remove(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publish(r)
	h.writeState(w)
}

// ClearWishlist handles DELETE /api/v1/wishlist.
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publish(r)
	h.writeState(w)
}
