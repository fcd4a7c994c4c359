package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createSessionRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// RegisterDashboardRoutes registers every authenticated endpoint.
func (h *Handler) RegisterDashboardRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/me", h.GetMe)
		r.Get("/state", h.GetState)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", h.ListSessions)
			r.Post("/", h.CreateSession)
			r.Get("/{id}", h.GetSession)
			r.Delete("/{id}", h.DeleteSession)
			r.Post("/{id}/connect", h.ConnectSession)
		})

		r.Route("/agents", func(r chi.Router) {
			r.Get("/", h.ListAgents)
			r.Post("/", h.CreateAgent)
			r.Get("/prefill", h.PrefillAgent)
			r.Get("/{id}", h.GetAgent)
			r.Patch("/{id}", h.UpdateAgent)
			r.Delete("/{id}", h.DeleteAgent)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", h.ListCatalog)
			r.Post("/", h.AddCatalogItem)
			r.Get("/{id}", h.GetCatalogItem)
			r.Patch("/{id}", h.UpdateCatalogItem)
			r.Delete("/{id}", h.DeleteCatalogItem)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/{id}/select", h.SelectTemplate)
		})
	})
}

// GetState reports the busy flags the dashboard uses to disable
// duplicate submissions.
func (h *Handler) GetState(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]bool{
		"store_busy": h.store.Busy(),
		"auth_busy":  h.auth.Busy(),
	})
}

// ListSessions returns every messaging session.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions(r.Context())
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// GetSession returns one session by ID.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"session": sess})
}

// CreateSession registers a new messaging session.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.store.CreateSession(r.Context(), req.Name, req.PhoneNumber)
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, map[string]any{"session": sess})
}

// ConnectSession drives the session's QR handshake.
func (h *Handler) ConnectSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.ConnectSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"session": sess})
}

// DeleteSession removes the session and cascades to its agents.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
