package http

import (
	"log/slog"
	"net/http"

	"github.com/wali-jeweller/storefront/internal/service"
	"github.com/wali-jeweller/storefront/pkg/httputil"
)

// CheckoutHandler handles the checkout confirmation endpoint.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// Confirm handles POST /api/v1/checkout/confirm. It turns the cart into an
// order and empties the cart.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Confirm(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}
