package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreau/agentdesk/internal/domain"
	"github.com/nmoreau/agentdesk/internal/store"
	"github.com/nmoreau/agentdesk/internal/templates"
)

// ListCatalog returns every catalog item.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.CatalogItems(r.Context())
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"items": items})
}

// GetCatalogItem returns one catalog item by ID.
func (h *Handler) GetCatalogItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.CatalogItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"item": item})
}

// AddCatalogItem registers a new catalog item.
func (h *Handler) AddCatalogItem(w http.ResponseWriter, r *http.Request) {
	var input store.CatalogInput
	if err := decode(r, &input); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.store.AddCatalogItem(r.Context(), input)
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, map[string]any{"item": item})
}

// UpdateCatalogItem applies a partial update to a catalog item.
func (h *Handler) UpdateCatalogItem(w http.ResponseWriter, r *http.Request) {
	var patch domain.CatalogPatch
	if err := decode(r, &patch); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.store.UpdateCatalogItem(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"item": item})
}

// DeleteCatalogItem removes one catalog item.
func (h *Handler) DeleteCatalogItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCatalogItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListTemplates returns the static template catalog, optionally filtered
// by category.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		JSON(w, http.StatusOK, map[string]any{"templates": templates.ByCategory(category)})
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"templates":  templates.All(),
		"categories": templates.Categories(),
	})
}

// SelectTemplate hands a template off to the agent-creation form.
func (h *Handler) SelectTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.handoff.Select(r.Context(), chi.URLParam(r, "id")); err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
