package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const identityKey ctxKey = iota

// RequireToken rejects requests that do not carry a valid bearer token and
// stores the verified identity on the request context.
func (s *Service) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token", "")
			return
		}

		ident, err := s.ValidateToken(raw)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token", "")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the identity RequireToken stored, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

// UserIDFromContext is a shorthand for handlers that only need the id.
func UserIDFromContext(ctx context.Context) string {
	if ident := IdentityFromContext(ctx); ident != nil {
		return ident.UserID
	}
	return ""
}
