package roast

import (
	"context"
	"errors"
	"testing"

	"cryptoroast/internal/completion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	answer string
	err    error
	calls  []completion.Request
}

func (s *stubLLM) Complete(ctx context.Context, req completion.Request) (string, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

// sequenceIntn отдаёт заранее заданные индексы по очереди.
func sequenceIntn(values ...int) IntnFunc {
	i := 0
	return func(n int) int {
		v := values[i%len(values)]
		i++
		return v % n
	}
}

func newTestService(t *testing.T, llm completion.Client, intn IntnFunc) (*Service, Catalog) {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewService(Deps{
		LLM:     llm,
		Store:   NewMemoryLatestStore(),
		Catalog: catalog,
		Model:   "meta-llama/Meta-Llama-3.1-8B-Instruct",
		Intn:    intn,
	}), catalog
}

func TestGenerateSuccessUpdatesLatest(t *testing.T) {
	llm := &stubLLM{answer: "Alice still holds Luna."}
	svc, catalog := newTestService(t, llm, sequenceIntn(5, 2))

	res, err := svc.Generate(context.Background(), "Alice")
	require.NoError(t, err)

	assert.Equal(t, "Alice still holds Luna.", res.Roast)
	assert.Equal(t, catalog.Personalities[2], res.Personality)

	require.Len(t, llm.calls, 1)
	call := llm.calls[0]
	assert.Equal(t, "Alice sold BTC at $20k, oops. Funny, crypto roast only.", call.Prompt)
	assert.Equal(t, "meta-llama/Meta-Llama-3.1-8B-Instruct", call.Model)
	assert.Equal(t, 2048, call.MaxTokens)
	assert.Equal(t, 0.7, call.Temperature)
	assert.Equal(t, 0.9, call.TopP)

	rec, ok := svc.Latest()
	assert.True(t, ok)
	assert.Equal(t, Record{Name: "Alice", Roast: "Alice still holds Luna."}, rec)
}

func TestGeneratePersonalityAlwaysFromCatalog(t *testing.T) {
	llm := &stubLLM{answer: "ok"}
	svc, catalog := newTestService(t, llm, nil)

	for i := 0; i < 100; i++ {
		res, err := svc.Generate(context.Background(), "Carol")
		require.NoError(t, err)
		assert.Contains(t, catalog.Personalities, res.Personality)
	}
}

func TestGenerateEmptyNameIsValidationError(t *testing.T) {
	llm := &stubLLM{answer: "unused"}
	svc, _ := newTestService(t, llm, nil)

	_, err := svc.Generate(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, llm.calls)

	_, ok := svc.Latest()
	assert.False(t, ok)
}

func TestGenerateUpstreamFailureKeepsLatest(t *testing.T) {
	llm := &stubLLM{answer: "first roast"}
	svc, _ := newTestService(t, llm, nil)

	_, err := svc.Generate(context.Background(), "Alice")
	require.NoError(t, err)

	cause := &completion.StatusError{StatusCode: 503}
	llm.err = cause
	_, err = svc.Generate(context.Background(), "Bob")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.ErrorIs(t, err, cause)
	assert.Len(t, llm.calls, 2, "no retry expected")

	rec, ok := svc.Latest()
	assert.True(t, ok)
	assert.Equal(t, Record{Name: "Alice", Roast: "first roast"}, rec)
}

func TestLatestBeforeAnySuccess(t *testing.T) {
	svc, _ := newTestService(t, &stubLLM{err: completion.ErrEmptyResponse}, nil)

	_, err := svc.Generate(context.Background(), "Dave")
	require.Error(t, err)

	rec, ok := svc.Latest()
	assert.False(t, ok)
	assert.Equal(t, Record{}, rec)
}

func TestServicesDoNotShareState(t *testing.T) {
	a, _ := newTestService(t, &stubLLM{answer: "a"}, nil)
	b, _ := newTestService(t, &stubLLM{answer: "b"}, nil)

	_, err := a.Generate(context.Background(), "Alice")
	require.NoError(t, err)

	_, ok := b.Latest()
	assert.False(t, ok)
}
