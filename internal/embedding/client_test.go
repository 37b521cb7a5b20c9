package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEmbed(t *testing.T) {
	var gotAuth, gotModel, gotInput string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModel = req.Model
		gotInput = req.Input

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.25, -0.5}}},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "sk-test", Model: "embed-small"}, testLogger())

	vector, err := client.Embed(context.Background(), "Gold Hoops")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5}, vector)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "embed-small", gotModel)
	assert.Equal(t, "Gold Hoops", gotInput)
}

func TestClientEmbed_EmptyText(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://localhost:0"}, testLogger())

	_, err := client.Embed(context.Background(), "   ")
	assert.Error(t, err)
}

func TestClientEmbed_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, testLogger())

	_, err := client.Embed(context.Background(), "Ring")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClientEmbed_EmptyVector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, testLogger())

	_, err := client.Embed(context.Background(), "Ring")
	assert.Error(t, err)
}
