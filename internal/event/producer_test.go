package event

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wali-jeweller/storefront/internal/cart"
	"github.com/wali-jeweller/storefront/internal/wishlist"
	pkgkafka "github.com/wali-jeweller/storefront/pkg/kafka"
)

// capturePublisher records every published event.
type capturePublisher struct {
	topics []string
	events []*pkgkafka.Event
}

func (c *capturePublisher) Publish(_ context.Context, topic string, event *pkgkafka.Event) error {
	c.topics = append(c.topics, topic)
	c.events = append(c.events, event)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProducer_AggregateIDsMatchSnapshotKeys(t *testing.T) {
	capture := &capturePublisher{}
	p := NewProducer(capture, discardLogger())

	p.PublishCartUpdated(context.Background(), cart.State{})
	p.PublishWishlistUpdated(context.Background(), []string{"p-1"})

	require.Len(t, capture.events, 2)
	assert.Equal(t, cart.SnapshotKey, capture.events[0].AggregateID)
	assert.Equal(t, wishlist.SnapshotKey, capture.events[1].AggregateID)
	assert.Equal(t, []string{TopicCartUpdated, TopicWishlistUpdated}, capture.topics)
}

func TestProducer_NilBackendIsNoOp(t *testing.T) {
	p := NewProducer(nil, discardLogger())

	p.PublishCartCleared(context.Background())
	p.PublishProductDeleted(context.Background(), "p-1")
}
