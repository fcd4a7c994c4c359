package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreau/agentdesk/internal/domain"
	"github.com/nmoreau/agentdesk/internal/store"
)

// ListAgents returns every agent.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.store.Agents(r.Context())
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"agents": agents})
}

// GetAgent returns one agent by ID.
func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := h.store.Agent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"agent": agent})
}

// CreateAgent registers a new agent.
func (h *Handler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var input store.AgentInput
	if err := decode(r, &input); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agent, err := h.store.CreateAgent(r.Context(), input)
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, map[string]any{"agent": agent})
}

// UpdateAgent applies a partial update to an agent.
func (h *Handler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	var patch domain.AgentPatch
	if err := decode(r, &patch); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agent, err := h.store.UpdateAgent(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"agent": agent})
}

// DeleteAgent removes one agent.
func (h *Handler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAgent(r.Context(), chi.URLParam(r, "id")); err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// PrefillAgent returns the agent-creation form defaults, consuming any
// template handed off from the gallery.
func (h *Handler) PrefillAgent(w http.ResponseWriter, r *http.Request) {
	prefill, err := h.handoff.PrefillAgentForm(r.Context())
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"prefill": prefill})
}
