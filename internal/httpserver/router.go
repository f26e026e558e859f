package httpserver

import (
	"net/http"
	"time"

	"cryptoroast/internal/middleware"

	"log/slog"

	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	Logger        *slog.Logger
	IndexHandler  http.Handler
	RoastHandler  http.HandlerFunc
	LatestHandler http.HandlerFunc
	ProofHandler  http.Handler
	Now           func() time.Time
}

// NewRouter собирает chi-роутер с общими middleware.
func NewRouter(deps RouterDeps) http.Handler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": now().UTC().Format(time.RFC3339),
		})
	})

	if deps.IndexHandler != nil {
		r.Method(http.MethodGet, "/", deps.IndexHandler)
	}
	r.Post("/roast", deps.RoastHandler)
	r.Get("/get_roast_data", deps.LatestHandler)
	if deps.ProofHandler != nil {
		r.Method(http.MethodPost, "/api/generate-proof", deps.ProofHandler)
	}

	return r
}
