package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Minute)

	exists, err := store.Contains(ctx, "ev-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Add(ctx, "ev-1"))

	exists, err = store.Contains(ctx, "ev-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryIdempotencyStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Nanosecond)

	require.NoError(t, store.Add(ctx, "ev-1"))
	time.Sleep(time.Millisecond)

	exists, err := store.Contains(ctx, "ev-1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 0, store.Len())
}

func TestIdempotentHandlerSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Minute)

	calls := 0
	handler := IdempotentHandler(store, func(ctx context.Context, event *Event) error {
		calls++
		return nil
	}, testLogger())

	event := &Event{EventID: "ev-dup", EventType: "product.updated"}
	require.NoError(t, handler(ctx, event))
	require.NoError(t, handler(ctx, event))
	assert.Equal(t, 1, calls)
}

func TestIdempotentHandlerDoesNotRecordFailures(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Minute)

	calls := 0
	handler := IdempotentHandler(store, func(ctx context.Context, event *Event) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	}, testLogger())

	event := &Event{EventID: "ev-retry"}
	assert.Error(t, handler(ctx, event))
	require.NoError(t, handler(ctx, event))
	assert.Equal(t, 2, calls)
}

func TestIdempotentHandlerPassthroughWithoutID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Minute)

	calls := 0
	handler := IdempotentHandler(store, func(ctx context.Context, event *Event) error {
		calls++
		return nil
	}, testLogger())

	event := &Event{EventType: "no.id"}
	require.NoError(t, handler(ctx, event))
	require.NoError(t, handler(ctx, event))
	assert.Equal(t, 2, calls)
}
