package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"cattery-backend-go/internal/services"
)

type contextKey string

// RequireAdmin rejects requests without a valid admin bearer token.
func RequireAdmin(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if _, err := tokenService.Verify(tokenStr); err != nil {
				if errors.Is(err, services.ErrTokenExpired) {
					WriteError(w, http.StatusUnauthorized, "Token has expired")
					return
				}
				WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(auth, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
