package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cryptoroast/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Client = (*OpenAIClient)(nil)
var _ Client = (*HTTPClient)(nil)

func chatCompletionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "meta-llama/Meta-Llama-3.1-8B-Instruct",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
					"refusal": "",
				},
				"logprobs": nil,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 6,
			"total_tokens":      18,
		},
	}
}

func TestOpenAIClientComplete(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionBody("Alice still holds Luna."))
	}))
	defer srv.Close()

	client := NewOpenAIClient(config.CompletionConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, srv.Client())

	answer, err := client.Complete(context.Background(), roastRequest())
	require.NoError(t, err)

	assert.Equal(t, "Alice still holds Luna.", answer)
	assert.True(t, strings.HasSuffix(gotPath, "/chat/completions"), "path %q", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "meta-llama/Meta-Llama-3.1-8B-Instruct", gotBody["model"])
	assert.EqualValues(t, 2048, gotBody["max_tokens"])
	assert.EqualValues(t, 0.7, gotBody["temperature"])
	assert.EqualValues(t, 0.9, gotBody["top_p"])
}

func TestOpenAIClientNoChoices(t *testing.T) {
	body := chatCompletionBody("")
	body["choices"] = []map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	client := NewOpenAIClient(config.CompletionConfig{APIKey: "test-key", BaseURL: srv.URL}, srv.Client())

	_, err := client.Complete(context.Background(), roastRequest())
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIClientStatusErrorWithoutRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(config.CompletionConfig{APIKey: "test-key", BaseURL: srv.URL}, srv.Client())

	_, err := client.Complete(context.Background(), roastRequest())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, 1, calls)
}
