package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptoroast/internal/completion"
	"cryptoroast/internal/config"
	"cryptoroast/internal/httpserver"
	"cryptoroast/internal/proof"
	"cryptoroast/internal/roast"
	"cryptoroast/internal/transport"
	"cryptoroast/internal/web"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	if cfg.Completion.APIKey == config.PlaceholderAPIKey {
		logger.Warn("HYPERBOLIC_API_KEY is not set, completion requests will be rejected upstream")
	}

	catalog, err := roast.DefaultCatalog()
	if err != nil {
		log.Fatalf("failed to load roast catalog: %v", err)
	}

	httpClient := transport.NewHTTPClient(cfg.RequestTimeout)
	llmClient := newCompletionClient(cfg.Completion, httpClient, logger)

	roaster := roast.NewService(roast.Deps{
		LLM:     llmClient,
		Store:   roast.NewMemoryLatestStore(),
		Catalog: catalog,
		Model:   cfg.Completion.Model,
		Logger:  logger,
	})

	validate := validator.New(validator.WithRequiredStructEnabled())
	roastHandler := roast.NewHandler(roast.HandlerDeps{
		Roaster:   roaster,
		Logger:    logger,
		Validator: validate,
	})
	proofHandler := proof.NewHandler(proof.HandlerDeps{
		Prover:    proof.NewCommandProver(cfg.Proof, logger),
		Logger:    logger,
		Validator: validate,
	})

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Logger:        logger,
		IndexHandler:  web.IndexHandler(),
		RoastHandler:  roastHandler.Roast,
		LatestHandler: roastHandler.Latest,
		ProofHandler:  proofHandler,
	})

	server := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("backend", cfg.Completion.Backend),
			slog.String("model", cfg.Completion.Model))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

func newCompletionClient(cfg config.CompletionConfig, httpClient *http.Client, logger *slog.Logger) completion.Client {
	if cfg.Backend == config.BackendOpenAI {
		return completion.NewOpenAIClient(cfg, httpClient)
	}
	return completion.NewHTTPClient(cfg, httpClient, logger)
}

func newLogger(level string) *slog.Logger {
	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}
