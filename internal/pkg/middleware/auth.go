package middleware

import (
	"context"
	"net/http"
	"strings"

	"gostocktake/internal/api/response"
	"gostocktake/internal/domain"
	apperror "gostocktake/internal/errors"
	"gostocktake/internal/pkg/logger"
	"gostocktake/internal/pkg/token"
)

// ContextKey é o tipo das chaves que o middleware anexa ao contexto.
// (Context Keys devem ser de um tipo único para evitar conflito com chaves string.)
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// que serão anexados ao contexto.
type UserClaims struct {
	UserID string
	Email  string
	Role   domain.UserRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	Verify(raw string) (*token.Claims, error)
}

// NewAuthMiddleware cria uma função de middleware que valida um JWT e anexa as claims
// (UserID, Email e Role) ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService, log logger.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			// 2. Validar o Token
			claims, err := tokenSvc.Verify(tokenString)
			if err != nil {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			// 3. Anexar Claims ao Contexto (o e-mail também identifica o autor no histórico)
			ctx := WithUserClaims(r.Context(), UserClaims{
				UserID: claims.UserID(),
				Email:  claims.Email,
				Role:   claims.Role,
			})
			ctx = domain.WithActor(ctx, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// WithUserClaims anexa as claims ao contexto (também usado nos testes dos handlers).
func WithUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, UserClaimsKey, claims)
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// PermissionMiddleware restringe o acesso aos papéis informados.
func PermissionMiddleware(log logger.Logger, requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// Se o AuthMiddleware não foi executado, tratamos como não autorizado.
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn("Acesso negado por papel insuficiente.", map[string]interface{}{"user_id": claims.UserID, "role": claims.Role, "path": r.URL.Path})
			response.Error(w, r, log, apperror.NewForbiddenError("Você não tem a permissão necessária."))
		}
	}
}
