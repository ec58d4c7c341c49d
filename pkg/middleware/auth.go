package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/authenticating"
	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"

	HeaderAPIKey = "X-API-Key"
)

// AuthMiddleware aceita Bearer JWT de usuários ou X-API-Key de outros serviços
func AuthMiddleware(authService authenticating.Authenticator, publicPaths ...string) func(http.Handler) http.Handler {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			var (
				claims *domain.Claims
				err    error
			)

			if apiKey := r.Header.Get(HeaderAPIKey); apiKey != "" {
				claims, err = authService.ValidateAPIKey(apiKey)
			} else {
				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Authorization header is required", nil)
					return
				}

				tokenString := strings.TrimPrefix(authHeader, "Bearer ")
				if tokenString == authHeader {
					apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token is required", nil)
					return
				}

				claims, err = authService.ValidateToken(tokenString)
			}

			if err != nil {
				code := apiErrors.ErrInvalidToken
				var authErr *authenticating.AuthError
				if errors.As(err, &authErr) && authErr.Code != "" {
					code = authErr.Code
				}
				log.ForContext(r.Context()).WithError(err).Warn("Falha na autenticação")
				apiErrors.WriteError(w, code, "Invalid credentials", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims obtém as claims do usuário autenticado
func GetClaims(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok
}

// WithClaims injeta claims no contexto
func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, ContextKeyUser, claims)
}
