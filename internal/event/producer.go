// Package event publishes storefront domain events to Kafka. Publish
// failures are logged and absorbed so user operations never fail on event
// delivery.
package event

import (
	"context"
	"log/slog"

	"github.com/wali-jeweller/storefront/internal/cart"
	"github.com/wali-jeweller/storefront/internal/wishlist"
	pkgkafka "github.com/wali-jeweller/storefront/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated       = "storefront.cart.updated"
	TopicCartCleared       = "storefront.cart.cleared"
	TopicWishlistUpdated   = "storefront.wishlist.updated"
	TopicProductUpdated    = "storefront.catalog.product.updated"
	TopicProductDeleted    = "storefront.catalog.product.deleted"
	TopicCheckoutConfirmed = "storefront.checkout.confirmed"
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeProduct  = "product"
	AggregateTypeOrder    = "order"
)

// Source identifier for events originating from this service.
const Source = "storefront"

// publisher is the subset of the Kafka producer used here.
type publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// CartUpdatedData is the payload for cart.updated and cart.cleared events.
type CartUpdatedData struct {
	Items     []cart.Item `json:"items"`
	Total     int64       `json:"total"`
	ItemCount int         `json:"item_count"`
}

// WishlistUpdatedData is the payload for wishlist.updated events.
type WishlistUpdatedData struct {
	ItemIDs []string `json:"item_ids"`
}

// ProductUpdatedData is the payload for catalog.product.updated events. The
// embedding worker consumes it to recompute the product embedding.
type ProductUpdatedData struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ProductDeletedData is the payload for catalog.product.deleted events.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// CheckoutConfirmedData is the payload for checkout.confirmed events.
type CheckoutConfirmedData struct {
	OrderNumber string      `json:"order_number"`
	Items       []cart.Item `json:"items"`
	Total       int64       `json:"total"`
}

// Producer publishes storefront domain events.
type Producer struct {
	kafka  publisher
	logger *slog.Logger
}

// NewProducer creates an event producer. A nil kafka producer disables
// publishing entirely, which keeps local development working without a broker.
func NewProducer(kafka publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, state cart.State) {
	data := CartUpdatedData{Items: state.Items, Total: state.Total(), ItemCount: state.ItemCount()}
	p.publish(ctx, TopicCartUpdated, cart.SnapshotKey, AggregateTypeCart, data)
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context) {
	p.publish(ctx, TopicCartCleared, cart.SnapshotKey, AggregateTypeCart, CartUpdatedData{Items: []cart.Item{}})
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, itemIDs []string) {
	p.publish(ctx, TopicWishlistUpdated, wishlist.SnapshotKey, AggregateTypeWishlist, WishlistUpdatedData{ItemIDs: itemIDs})
}

// PublishProductUpdated publishes a catalog.product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, data ProductUpdatedData) {
	p.publish(ctx, TopicProductUpdated, data.ID, AggregateTypeProduct, data)
}

// PublishProductDeleted publishes a catalog.product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string) {
	p.publish(ctx, TopicProductDeleted, id, AggregateTypeProduct, ProductDeletedData{ID: id})
}

// PublishCheckoutConfirmed publishes a checkout.confirmed event.
func (p *Producer) PublishCheckoutConfirmed(ctx context.Context, data CheckoutConfirmedData) {
	p.publish(ctx, TopicCheckoutConfirmed, data.OrderNumber, AggregateTypeOrder, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) {
	if p.kafka == nil {
		return
	}

	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to create event",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		p.logger.WarnContext(ctx, "failed to publish event",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
	}
}
