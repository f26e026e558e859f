package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendHTTP   = "http"
	BackendOpenAI = "openai"

	// PlaceholderAPIKey подставляется, если ключ не задан. Запросы с ним упадут на стороне провайдера.
	PlaceholderAPIKey = "replace-your-api-key-here"
)

type Config struct {
	HTTPAddr       string
	LogLevel       string
	RequestTimeout time.Duration
	Completion     CompletionConfig
	Proof          ProofConfig
}

type CompletionConfig struct {
	Backend string
	APIKey  string
	BaseURL string
	Model   string
}

type ProofConfig struct {
	Command []string
	WorkDir string
	Timeout time.Duration
}

// Load читает .env (если есть) и переменные окружения.
func Load() (Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	var cfg Config

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":5000")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	reqTimeout, err := parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = reqTimeout

	cfg.Completion = CompletionConfig{
		Backend: strings.ToLower(getEnv("COMPLETION_BACKEND", BackendHTTP)),
		APIKey:  getEnv("HYPERBOLIC_API_KEY", PlaceholderAPIKey),
		BaseURL: strings.TrimSuffix(getEnv("HYPERBOLIC_BASE_URL", "https://api.hyperbolic.xyz/v1"), "/"),
		Model:   getEnv("ROAST_MODEL", "meta-llama/Meta-Llama-3.1-8B-Instruct"),
	}
	switch cfg.Completion.Backend {
	case BackendHTTP, BackendOpenAI:
	default:
		return Config{}, fmt.Errorf("unknown COMPLETION_BACKEND %q", cfg.Completion.Backend)
	}

	proofTimeout, err := parseDuration(getEnv("PROOF_TIMEOUT", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROOF_TIMEOUT: %w", err)
	}
	cfg.Proof = ProofConfig{
		Command: strings.Fields(getEnv("PROOF_COMMAND", "")),
		WorkDir: getEnv("PROOF_WORKDIR", ""),
		Timeout: proofTimeout,
	}

	return cfg, nil
}

// loadDotEnv не перезаписывает уже заданные переменные окружения.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	return time.ParseDuration(value)
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}
