package roast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cryptoroast/internal/completion"
)

const (
	MaxTokens   = 2048
	Temperature = 0.7
	TopP        = 0.9
)

var ErrValidation = errors.New("name is required")

// UpstreamError любой сбой провайдера: сеть, не-2xx статус, неожиданная форма ответа.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion upstream: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Result ответ на запрос прожарки.
type Result struct {
	Roast       string `json:"roast"`
	Personality string `json:"personality"`
}

type Deps struct {
	LLM     completion.Client
	Store   LatestStore
	Catalog Catalog
	Model   string
	Logger  *slog.Logger
	// Intn источник случайности; nil означает math/rand/v2.
	Intn IntnFunc
}

type Service struct {
	llm     completion.Client
	store   LatestStore
	catalog Catalog
	model   string
	logger  *slog.Logger
	intn    IntnFunc
}

func NewService(deps Deps) *Service {
	intn := deps.Intn
	if intn == nil {
		intn = defaultIntn
	}
	store := deps.Store
	if store == nil {
		store = NewMemoryLatestStore()
	}
	return &Service{
		llm:     deps.LLM,
		store:   store,
		catalog: deps.Catalog,
		model:   deps.Model,
		logger:  deps.Logger,
		intn:    intn,
	}
}

// Generate собирает промпт, делает один вызов модели и при успехе перезаписывает последнюю запись.
func (s *Service) Generate(ctx context.Context, name string) (Result, error) {
	if name == "" {
		return Result{}, ErrValidation
	}

	prompt := ComposePrompt(ChooseUniform(s.catalog.Prompts, s.intn), name)
	personality := ChooseUniform(s.catalog.Personalities, s.intn)

	text, err := s.llm.Complete(ctx, completion.Request{
		Model:       s.model,
		Prompt:      prompt,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
		TopP:        TopP,
	})
	if err != nil {
		return Result{}, &UpstreamError{Err: err}
	}

	s.store.Set(Record{Name: name, Roast: text})
	if s.logger != nil {
		s.logger.Debug("roast generated",
			slog.String("personality", personality),
			slog.Int("roast_len", len(text)))
	}

	return Result{Roast: text, Personality: personality}, nil
}

// Latest возвращает последнюю успешную запись.
func (s *Service) Latest() (Record, bool) {
	return s.store.Get()
}
