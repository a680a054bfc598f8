// Package middleware HTTP middleware сервиса: аутентификация, метрики, request id
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
	msgUserOnly     = "операция доступна только пользователям"
	msgAdminOnly    = "операция доступна только администраторам"
)

// Auth проверяет bearer токен и кладет субъекта в контекст запроса
type Auth struct {
	tokens TokenParser
	logger Logger
}

func NewAuth(tokens TokenParser, logger Logger) *Auth {
	return &Auth{tokens: tokens, logger: logger}
}

// RequireUser пропускает только конечных пользователей
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return a.require(domain.PrincipalUser, msgUserOnly, next)
}

// RequireAdmin пропускает только администраторов
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.require(domain.PrincipalAdmin, msgAdminOnly, next)
}

func (a *Auth) require(kind domain.PrincipalKind, forbidden string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			a.logger.Warn("Auth: missing bearer token path=%s", r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		principal, err := a.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			a.logger.Warn("Auth: rejected token path=%s: %v", r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		if principal.Kind != kind {
			a.logger.Warn("Auth: %s id=%d is not allowed on path=%s", principal.Kind, principal.ID, r.URL.Path)
			handlers.RespondForbidden(w, forbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.WithPrincipal(r.Context(), *principal)))
	})
}

// GetPrincipal возвращает субъекта, положенного в контекст middleware Auth
func GetPrincipal(ctx context.Context) (*domain.Principal, bool) {
	return domain.PrincipalFromContext(ctx)
}
