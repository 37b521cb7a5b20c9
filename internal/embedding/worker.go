package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/internal/event"
	"github.com/wali-jeweller/storefront/pkg/kafka"
)

// idempotencyTTL bounds how long processed event IDs are remembered.
const idempotencyTTL = 24 * time.Hour

// repository is the subset of the product repository the worker needs.
type repository interface {
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
}

// Worker consumes product-changed events and recomputes stored embeddings so
// the related-products search stays in step with the catalog.
type Worker struct {
	consumer *kafka.Consumer
	logger   *slog.Logger
}

// NewWorker creates a worker consuming product.updated events. Duplicate
// deliveries are deduplicated by event ID.
func NewWorker(brokers []string, embedder Embedder, repo repository, logger *slog.Logger) *Worker {
	handler := kafka.IdempotentHandler(
		kafka.NewMemoryIdempotencyStore(idempotencyTTL),
		Handler(embedder, repo, logger),
		logger,
	)

	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: brokers,
		GroupID: "storefront-embeddings",
		Topic:   event.TopicProductUpdated,
	}, handler, logger)

	return &Worker{
		consumer: consumer,
		logger:   logger,
	}
}

// Run consumes until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	return w.consumer.Start(ctx)
}

// Close shuts the underlying consumer down.
func (w *Worker) Close() error {
	return w.consumer.Close()
}

// Handler returns the kafka handler that recomputes one product's embedding.
// Exposed separately so tests can drive it without a broker.
func Handler(embedder Embedder, repo repository, logger *slog.Logger) kafka.Handler {
	return func(ctx context.Context, evt *kafka.Event) error {
		var data event.ProductUpdatedData
		if err := evt.UnmarshalData(&data); err != nil {
			return fmt.Errorf("unmarshal product event: %w", err)
		}
		if data.ID == "" {
			return fmt.Errorf("product event missing id")
		}

		vector, err := embedder.Embed(ctx, EmbeddingText(data.Name, data.Description))
		if err != nil {
			return fmt.Errorf("embed product %s: %w", data.ID, err)
		}

		if err := repo.UpdateEmbedding(ctx, data.ID, vector); err != nil {
			return fmt.Errorf("store embedding for product %s: %w", data.ID, err)
		}

		logger.InfoContext(ctx, "embedding refreshed",
			slog.String("product_id", data.ID),
			slog.Int("dimensions", len(vector)),
		)

		return nil
	}
}

// EmbeddingText builds the text embedded for a product. Name and description
// are concatenated so both contribute to similarity.
func EmbeddingText(name string, description *string) string {
	if description == nil || strings.TrimSpace(*description) == "" {
		return name
	}
	return name + "\n\n" + *description
}

var _ repository = domain.ProductRepository(nil)
