package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmoreau/agentdesk/internal/auth"
	"github.com/nmoreau/agentdesk/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// RegisterAuthRoutes registers the public credential endpoints.
func (h *Handler) RegisterAuthRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)
		r.Post("/forgot-password", h.ForgotPassword)
	})
}

// Login verifies credentials and issues a session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		DomainError(w, err)
		return
	}

	if err := h.issueSession(w, user); err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"user": user})
}

// Register creates an account and issues a session cookie.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		DomainError(w, err)
		return
	}

	if err := h.issueSession(w, user); err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, map[string]any{"user": user})
}

// Logout clears the current user and the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		DomainError(w, err)
		return
	}

	auth.ClearTokenCookie(w, h.isDev)
	JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ForgotPassword simulates sending a password reset email.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		DomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetMe returns the authenticated user's identity.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := h.auth.CurrentUser()
	if user == nil {
		// The token may outlive a logout on another tab; fall back to
		// the claims carried by the token itself.
		user = &domain.User{
			ID:    auth.UserIDFromContext(r.Context()),
			Email: auth.EmailFromContext(r.Context()),
			Name:  auth.NameFromContext(r.Context()),
		}
	}
	JSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) issueSession(w http.ResponseWriter, user *domain.User) error {
	token, expires, err := auth.IssueToken(h.secret, user, h.tokenTTL)
	if err != nil {
		return err
	}
	auth.SetTokenCookie(w, token, expires, h.isDev)
	return nil
}
