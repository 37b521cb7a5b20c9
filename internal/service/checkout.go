package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wali-jeweller/storefront/internal/cart"
	"github.com/wali-jeweller/storefront/internal/event"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

// Order is the confirmation returned to the shopper after checkout.
type Order struct {
	OrderNumber string      `json:"order_number"`
	Items       []cart.Item `json:"items"`
	Total       int64       `json:"total"`
	ConfirmedAt time.Time   `json:"confirmed_at"`
}

// CheckoutService turns the current cart into a confirmed order. Payment is
// handled off-platform; confirmation records the order and empties the cart.
type CheckoutService struct {
	cart     *cart.Store
	producer *event.Producer
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(cartStore *cart.Store, producer *event.Producer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		cart:     cartStore,
		producer: producer,
		logger:   logger,
	}
}

// Confirm snapshots the cart into an order, clears the cart, and publishes a
// confirmation event. An empty cart cannot be confirmed.
func (s *CheckoutService) Confirm(ctx context.Context) (*Order, error) {
	state := s.cart.Snapshot()
	if len(state.Items) == 0 {
		return nil, apperrors.InvalidInput("cannot confirm an empty cart")
	}

	order := &Order{
		OrderNumber: newOrderNumber(time.Now().UTC()),
		Items:       state.Items,
		Total:       state.Total(),
		ConfirmedAt: time.Now().UTC(),
	}

	if err := s.cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear cart after checkout: %w", err)
	}

	s.producer.PublishCheckoutConfirmed(ctx, event.CheckoutConfirmedData{
		OrderNumber: order.OrderNumber,
		Items:       order.Items,
		Total:       order.Total,
	})

	s.logger.InfoContext(ctx, "checkout confirmed",
		slog.String("order_number", order.OrderNumber),
		slog.Int("item_count", state.ItemCount()),
		slog.Int64("total", order.Total),
	)

	return order, nil
}

// newOrderNumber builds a human-readable order reference like
// WJ-20260829-3FA2B1.
func newOrderNumber(now time.Time) string {
	var b [3]byte
	// rand.Read on the crypto source never fails in practice.
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("WJ-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(b[:])))
}
