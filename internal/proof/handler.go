package proof

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"cryptoroast/internal/httpserver"
	"cryptoroast/internal/middleware"

	"github.com/go-playground/validator/v10"
)

type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type proofRequest struct {
	Name string `json:"name" validate:"required"`
}

type HandlerDeps struct {
	Prover    Prover
	Logger    *slog.Logger
	Validator *validator.Validate
}

// Handler обслуживает POST /api/generate-proof.
type Handler struct {
	prover   Prover
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(deps HandlerDeps) *Handler {
	v := deps.Validator
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{prover: deps.Prover, logger: logger, validate: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req proofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || h.validate.Struct(req) != nil {
		httpserver.WriteJSON(w, http.StatusBadRequest, failure{Error: "Name is required"})
		return
	}

	h.logger.Info("proof requested", slog.String("name", req.Name), slog.String("request_id", middleware.GetRequestID(r)))

	res, err := h.prover.Prove(r.Context(), req.Name)
	switch {
	case errors.Is(err, ErrDisabled):
		httpserver.WriteJSON(w, http.StatusServiceUnavailable, failure{Error: "Proof generation is disabled"})
		return
	case err != nil:
		h.logger.Error("proof generation error", slog.String("error", err.Error()))
		httpserver.WriteJSON(w, http.StatusInternalServerError, failure{Error: err.Error()})
		return
	}

	if !res.Success {
		h.logger.Warn("proof generation failed", slog.String("proof_hash", res.ProofHash))
	}
	httpserver.WriteJSON(w, http.StatusOK, res)
}
