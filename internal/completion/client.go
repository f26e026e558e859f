package completion

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidModel  = errors.New("model is required")
	ErrEmptyResponse = errors.New("empty response from model")
)

// Client одиночный вызов chat-completion без повторов.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request параметры одного запроса к провайдеру. Prompt уходит единственным user-сообщением.
type Request struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// StatusError ответ провайдера с не-2xx статусом.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

const bodySnippetLimit = 200

func bodySnippet(body []byte) string {
	if len(body) <= bodySnippetLimit {
		return string(body)
	}
	return string(body[:bodySnippetLimit])
}
