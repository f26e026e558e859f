package roast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cryptoroast/internal/httpserver"
	"cryptoroast/internal/middleware"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

const (
	msgNameRequired = "Name is required"
	msgUpstream     = "Failed to get roast"
)

type Generator interface {
	Generate(ctx context.Context, name string) (Result, error)
	Latest() (Record, bool)
}

type HandlerDeps struct {
	Roaster   Generator
	Logger    *slog.Logger
	Validator *validator.Validate
}

type Handler struct {
	roaster  Generator
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
	return &Handler{
		roaster:  deps.Roaster,
		logger:   logger,
		validate: v,
	}
}

type roastRequest struct {
	Name string `json:"name" validate:"required"`
}

// Roast обрабатывает POST /roast.
func (h *Handler) Roast(w http.ResponseWriter, r *http.Request) {
	var req roastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpserver.WriteJSONError(w, http.StatusBadRequest, msgNameRequired)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpserver.WriteJSONError(w, http.StatusBadRequest, msgNameRequired)
		return
	}

	res, err := h.roaster.Generate(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			httpserver.WriteJSONError(w, http.StatusBadRequest, msgNameRequired)
			return
		}
		h.logger.Error("roast failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r)))
		httpserver.WriteJSONError(w, http.StatusInternalServerError, msgUpstream)
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, res)
}

// Latest обрабатывает GET /get_roast_data. До первого успеха отдаёт {}.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.roaster.Latest()
	if !ok {
		httpserver.WriteJSON(w, http.StatusOK, struct{}{})
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, rec)
}
