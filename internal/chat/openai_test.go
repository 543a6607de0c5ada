package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model               string  `json:"model"`
	MaxCompletionTokens int     `json:"max_completion_tokens"`
	Temperature         float64 `json:"temperature"`
	Messages            []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newOpenAITestServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIComplete(t *testing.T) {
	var got capturedRequest
	srv := newOpenAITestServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1730000000,
		"model": "gpt-5.1",
		"choices": [{
			"index": 0,
			"finish_reason": "stop",
			"message": {"role": "assistant", "content": "Medium shot of a cat on a skateboard"}
		}]
	}`, &got)

	c := NewOpenAI("test-key", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	text, err := c.Complete(context.Background(), "veo rules", "a cat on a skateboard")
	require.NoError(t, err)
	assert.Equal(t, "Medium shot of a cat on a skateboard", text)

	assert.Equal(t, DefaultOpenAIModel, got.Model)
	assert.Equal(t, 2048, got.MaxCompletionTokens)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "veo rules", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "a cat on a skateboard", got.Messages[1].Content)
}

func TestOpenAIRateLimit(t *testing.T) {
	srv := newOpenAITestServer(t, http.StatusTooManyRequests,
		`{"error": {"message": "Rate limit reached", "type": "requests", "code": "rate_limit_exceeded"}}`, nil)

	c := NewOpenAI("test-key", "gpt-test", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	_, err := c.Complete(context.Background(), "s", "u")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.RateLimited())
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Code)
	assert.Equal(t, ProviderOpenAI, apiErr.Provider)
}

func TestOpenAIServerError(t *testing.T) {
	srv := newOpenAITestServer(t, http.StatusBadRequest,
		`{"error": {"message": "Invalid model", "type": "invalid_request_error"}}`, nil)

	c := NewOpenAI("test-key", "gpt-test", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	_, err := c.Complete(context.Background(), "s", "u")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.RateLimited())
	assert.Contains(t, apiErr.ClientMessage(), "Invalid model")
}

func TestOpenAINoChoices(t *testing.T) {
	srv := newOpenAITestServer(t, http.StatusOK,
		`{"id": "x", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`, nil)

	c := NewOpenAI("test-key", "m", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	_, err := c.Complete(context.Background(), "s", "u")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
}
