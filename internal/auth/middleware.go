package auth

import (
	"context"
	"net/http"
	"time"
)

// TokenCookieName is the cookie carrying the dashboard session JWT.
const TokenCookieName = "agentdesk_token"

type contextKey int

const (
	userIDKey contextKey = iota
	emailKey
	nameKey
)

// UserIDFromContext extracts the authenticated user ID from the request
// context.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// EmailFromContext extracts the authenticated user's email from the
// request context.
func EmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(emailKey).(string); ok {
		return v
	}
	return ""
}

// NameFromContext extracts the authenticated user's display name from the
// request context.
func NameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(nameKey).(string); ok {
		return v
	}
	return ""
}

// SetTokenCookie writes the session JWT cookie on the response.
func SetTokenCookie(w http.ResponseWriter, token string, expires time.Time, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !isDev,
	})
}

// ClearTokenCookie expires the session JWT cookie.
func ClearTokenCookie(w http.ResponseWriter, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !isDev,
	})
}

// RequireAuth returns middleware that rejects requests without a valid
// session token. Valid requests carry the user's identity in the context.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := ValidateToken(secret, cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, userIDKey, claims.Subject)
			ctx = context.WithValue(ctx, emailKey, claims.Email)
			ctx = context.WithValue(ctx, nameKey, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error": "unauthorized"}`))
}
