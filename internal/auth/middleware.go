package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/device-inventory/pkg/handlers"
)

// Authenticate resolves a session from the Authorization bearer token or
// the session cookie. Missing or invalid tokens yield an anonymous session.
func Authenticate(tokens *Tokens, cookieName string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				if c, err := r.Cookie(cookieName); err == nil {
					raw = c.Value
				}
			}

			var session Session
			if raw != "" {
				s, err := tokens.Verify(raw)
				if err != nil {
					logger.Debug("session rejected", "error", err)
				} else {
					session = s
				}
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireAdmin rejects requests whose session is not an administrator with 403.
func RequireAdmin(logger *slog.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).IsAdmin {
			handlers.RespondError(w, logger, http.StatusForbidden, ErrForbidden)
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
