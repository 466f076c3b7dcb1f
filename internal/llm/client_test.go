package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longregen/pipegen/internal/domain"
)

func newTestService(t *testing.T, completion string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/models":
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": []any{}})
		case "/v1/chat/completions":
			var req ChatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.False(t, req.Stream)
			assert.NotEmpty(t, req.Model)

			w.WriteHeader(status)
			if status != http.StatusOK {
				w.Write([]byte(`{"error":"boom"}`))
				return
			}
			resp := ChatCompletionResponse{Model: req.Model}
			resp.Choices = append(resp.Choices, struct {
				Index        int         `json:"index"`
				Message      ChatMessage `json:"message"`
				FinishReason string      `json:"finish_reason"`
			}{Message: ChatMessage{Role: "assistant", Content: completion}})
			json.NewEncoder(w).Encode(resp)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	for _, raw := range []string{
		"http://localhost:11434",
		"http://localhost:11434/",
		"http://localhost:11434/v1",
		"http://localhost:11434/v1/",
	} {
		c := NewClient(raw, "llama3.2", 2000, 0.7)
		assert.Equal(t, "http://localhost:11434", c.BaseURL(), "raw: %s", raw)
	}
}

func TestClient_Ping(t *testing.T) {
	server := newTestService(t, "", http.StatusOK)
	defer server.Close()

	c := NewClient(server.URL, "llama3.2", 2000, 0.7)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestClient_Ping_ServiceDown(t *testing.T) {
	server := newTestService(t, "", http.StatusOK)
	server.Close() // connection refused

	c := NewClient(server.URL, "llama3.2", 2000, 0.7)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestClient_Ping_BadStatus(t *testing.T) {
	server := newTestService(t, "", http.StatusInternalServerError)
	defer server.Close()

	c := NewClient(server.URL, "llama3.2", 2000, 0.7)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestClient_Complete(t *testing.T) {
	server := newTestService(t, "POSITIVE", http.StatusOK)
	defer server.Close()

	c := NewClient(server.URL, "llama3.2", 2000, 0.7)
	out, err := c.Complete(context.Background(), "Classify: great product!")
	require.NoError(t, err)
	assert.Equal(t, "POSITIVE", out)
}

func TestClient_Complete_ErrorStatus(t *testing.T) {
	server := newTestService(t, "", http.StatusBadGateway)
	defer server.Close()

	c := NewClient(server.URL, "llama3.2", 2000, 0.7)
	_, err := c.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrInference)
}

func TestClient_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatCompletionResponse{})
	}))
	defer server.Close()

	c := NewClient(server.URL, "llama3.2", 2000, 0.7)
	_, err := c.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrInference)
}
