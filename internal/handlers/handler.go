package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tpc3/MisskeyIntegrate/internal/config"
	"github.com/tpc3/MisskeyIntegrate/internal/misskey"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	cfg     *config.Config
	logger  zerolog.Logger
	misskey *misskey.Client
	httpCli *http.Client
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(cfg *config.Config, logger zerolog.Logger, mk *misskey.Client) *Handler {
	return &Handler{
		cfg:     cfg,
		logger:  logger,
		misskey: mk,
		httpCli: &http.Client{Timeout: cfg.Misskey.Timeout},
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
