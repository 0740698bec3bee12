package httpapi

import (
	"context"
	"net/http"

	"schooldesk-backend-go/internal/services"
)

type contextKey string

const ctxPrincipal contextKey = "principal"

const sessionCookie = "session"

// WithSession derives the caller's principal from the session cookie once per
// request. A missing or invalid cookie yields an anonymous principal; the
// guards below decide whether that matters.
func WithSession(sessions services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := services.Principal{}
			if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
				if parsed, err := sessions.Parse(cookie.Value); err == nil {
					principal = parsed
				}
			}
			ctx := context.WithValue(r.Context(), ctxPrincipal, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentPrincipal(r *http.Request) services.Principal {
	if value, ok := r.Context().Value(ctxPrincipal).(services.Principal); ok {
		return value
	}
	return services.Principal{}
}

// RequireAdmin redirects non-admin callers to the login entry point without
// executing the requested action.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !CurrentPrincipal(r).IsAdmin() {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireTeacher redirects callers without a teacher session to login.
func RequireTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !CurrentPrincipal(r).IsTeacher() {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func setSessionCookie(w http.ResponseWriter, blob string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    blob,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
