// Package api provides HTTP handlers for the agentdesk API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nmoreau/agentdesk/internal/auth"
	"github.com/nmoreau/agentdesk/internal/domain"
	"github.com/nmoreau/agentdesk/internal/store"
	"github.com/nmoreau/agentdesk/internal/templates"
)

// Handler provides common handler utilities and dependencies.
type Handler struct {
	store    store.Service
	auth     *auth.Service
	handoff  *templates.Handoff
	secret   []byte
	tokenTTL time.Duration
	isDev    bool
}

// Options configures a Handler.
type Options struct {
	Secret   []byte
	TokenTTL time.Duration
	IsDev    bool
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(st store.Service, authSvc *auth.Service, handoff *templates.Handoff, opts Options) *Handler {
	return &Handler{
		store:    st,
		auth:     authSvc,
		handoff:  handoff,
		secret:   opts.Secret,
		tokenTTL: opts.TokenTTL,
		isDev:    opts.IsDev,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response with an explicit status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// DomainError maps a domain error to its HTTP status and writes it.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// decode reads a JSON request body into v.
func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
