package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pharmtrack/internal/core/auth"
	"pharmtrack/internal/domain"
)

type contextKey int

const (
	userContextKey contextKey = iota
	tokenContextKey
)

// JWT resolves the bearer token into a domain.AuthUser and stores it in the
// request context. Identity is resolved exactly once per request; handlers
// read it with GetUser and pass the user id explicitly into service calls.
func JWT(secret string, users domain.UserRepository, tokens domain.TokenStore) Middleware {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			claims, err := auth.ParseToken(token, secretBytes)
			if err != nil {
				unauthorized(w)
				return
			}

			revoked, err := tokens.IsRevoked(r.Context(), token)
			if err != nil || revoked {
				unauthorized(w)
				return
			}

			// The subject must still exist; a token for a deleted user is
			// as good as no token.
			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, domain.AuthUser{
				ID:           user.ID,
				EmailAddress: user.EmailAddress,
			})
			ctx = context.WithValue(ctx, tokenContextKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken takes the bearer token from the Authorization header, falling
// back to the access_token cookie set at login.
func ExtractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}

func GetUser(ctx context.Context) (domain.AuthUser, bool) {
	user, ok := ctx.Value(userContextKey).(domain.AuthUser)
	return user, ok
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
}
