package embedding

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wali-jeweller/storefront/internal/event"
	"github.com/wali-jeweller/storefront/pkg/kafka"
)

type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
	texts  []string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	s.texts = append(s.texts, text)
	return s.vector, s.err
}

type stubRepo struct {
	id     string
	vector []float32
	err    error
}

func (s *stubRepo) UpdateEmbedding(_ context.Context, id string, embedding []float32) error {
	s.id = id
	s.vector = embedding
	return s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func productEvent(t *testing.T, data event.ProductUpdatedData) *kafka.Event {
	t.Helper()
	evt, err := kafka.NewEvent(event.TopicProductUpdated, data.ID, event.AggregateTypeProduct, event.Source, data)
	require.NoError(t, err)
	return evt
}

func TestHandler_RefreshesEmbedding(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1, 0.2, 0.3}}
	repo := &stubRepo{}
	handler := Handler(embedder, repo, testLogger())

	desc := "Hand-finished 18k gold vermeil."
	evt := productEvent(t, event.ProductUpdatedData{ID: "p-1", Name: "Gold Hoops", Description: &desc})

	require.NoError(t, handler(context.Background(), evt))
	assert.Equal(t, "p-1", repo.id)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, repo.vector)
	require.Len(t, embedder.texts, 1)
	assert.Contains(t, embedder.texts[0], "Gold Hoops")
	assert.Contains(t, embedder.texts[0], "gold vermeil")
}

func TestHandler_EmbedFailurePropagates(t *testing.T) {
	embedder := &stubEmbedder{err: assert.AnError}
	repo := &stubRepo{}
	handler := Handler(embedder, repo, testLogger())

	evt := productEvent(t, event.ProductUpdatedData{ID: "p-1", Name: "Ring"})

	assert.Error(t, handler(context.Background(), evt))
	assert.Empty(t, repo.id)
}

func TestHandler_MissingID(t *testing.T) {
	handler := Handler(&stubEmbedder{vector: []float32{1}}, &stubRepo{}, testLogger())

	evt := productEvent(t, event.ProductUpdatedData{Name: "No ID"})

	assert.Error(t, handler(context.Background(), evt))
}

func TestHandler_Idempotent(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1}}
	repo := &stubRepo{}
	handler := kafka.IdempotentHandler(
		kafka.NewMemoryIdempotencyStore(idempotencyTTL),
		Handler(embedder, repo, testLogger()),
		testLogger(),
	)

	evt := productEvent(t, event.ProductUpdatedData{ID: "p-1", Name: "Ring"})

	require.NoError(t, handler(context.Background(), evt))
	require.NoError(t, handler(context.Background(), evt))
	assert.Equal(t, 1, embedder.calls)
}

func TestEmbeddingText(t *testing.T) {
	assert.Equal(t, "Ring", EmbeddingText("Ring", nil))

	empty := "   "
	assert.Equal(t, "Ring", EmbeddingText("Ring", &empty))

	desc := "A description."
	assert.Equal(t, "Ring\n\nA description.", EmbeddingText("Ring", &desc))
}
