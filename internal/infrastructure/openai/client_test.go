package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/querygen/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "", "gpt-4o-mini")

	assert.NotNil(t, client)
	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.NotNil(t, client.api)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient("test-api-key", "", "gpt-4o-mini")

	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
}

// fakeCompletionServer emulates the chat completions endpoint and captures
// the decoded request body.
func fakeCompletionServer(t *testing.T, content string, captured *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": ` + mustJSON(content) + `}}]
		}`))
	}))
}

func mustJSON(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func TestComplete_Success(t *testing.T) {
	var captured map[string]interface{}
	server := fakeCompletionServer(t, `{"queries":[]}`, &captured)
	defer server.Close()

	client := NewClient("test-api-key", server.URL+"/v1", "gpt-4o-mini")
	ctx := context.Background()

	completion, err := client.Complete(ctx, "system text", "user text", domain.SamplingParams{
		Temperature:      0.7,
		MaxTokens:        400,
		TopP:             0.9,
		FrequencyPenalty: 0.3,
		PresencePenalty:  0.2,
	})

	require.NoError(t, err)
	require.Len(t, completion.Choices, 1)
	assert.Equal(t, `{"queries":[]}`, completion.FirstContent())

	assert.Equal(t, "gpt-4o-mini", captured["model"])
	messages, ok := captured["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]interface{})
	second := messages[1].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "system text", first["content"])
	assert.Equal(t, "user", second["role"])
	assert.Equal(t, "user text", second["content"])
	assert.InDelta(t, 0.9, captured["top_p"], 0.0001)
	assert.InDelta(t, 0.3, captured["frequency_penalty"], 0.0001)
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL+"/v1", "gpt-4o-mini")

	completion, err := client.Complete(context.Background(), "s", "u", domain.SamplingParams{})

	require.NoError(t, err)
	assert.Empty(t, completion.Choices)
	assert.Equal(t, "", completion.FirstContent())
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL+"/v1", "gpt-4o-mini")

	completion, err := client.Complete(context.Background(), "s", "u", domain.SamplingParams{})

	assert.Nil(t, completion)
	assert.ErrorIs(t, err, domain.ErrCompletionFailure)
}

func TestComplete_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient("test-api-key", server.URL+"/v1", "gpt-4o-mini")

	completion, err := client.Complete(context.Background(), "s", "u", domain.SamplingParams{})

	assert.Nil(t, completion)
	assert.ErrorIs(t, err, domain.ErrCompletionFailure)
}

func TestComplete_ContextCanceled(t *testing.T) {
	server := fakeCompletionServer(t, "ok", nil)
	defer server.Close()

	client := NewClient("test-api-key", server.URL+"/v1", "gpt-4o-mini")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completion, err := client.Complete(ctx, "s", "u", domain.SamplingParams{})

	assert.Nil(t, completion)
	assert.Error(t, err)
}
