package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Context Keys devem ser não-exportadas e de um tipo único.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// DetailInvalidToken é o detalhe devolvido para qualquer falha de autenticação.
const DetailInvalidToken = "TOKEN_INVALIDO"

// UserClaims representa os dados do usuário extraídos do token JWT.
type UserClaims struct {
	Subject string
	TokenID string
}

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.Claims, error)
}

// NewAuthMiddleware cria o portão de autenticação: exige "Authorization: Bearer <jwt>"
// válido e anexa as claims ao contexto. Falhas retornam 401 antes de chegar ao handler.
func NewAuthMiddleware(tokenSvc TokenValidator, log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
				log.Debug("Requisição sem token de autorização.", map[string]interface{}{"path": r.URL.Path})
				writeUnauthorized(w)
				return
			}

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				log.Debug("Token rejeitado.", map[string]interface{}{"path": r.URL.Path, "error": err.Error()})
				writeUnauthorized(w)
				return
			}

			// 3. Anexar Claims ao Contexto
			ctx := context.WithValue(r.Context(), UserClaimsKey, UserClaims{
				Subject: claims.UserID,
				TokenID: claims.ID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	appErr := apperror.NewUnauthorizedError(DetailInvalidToken)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(appErr.HTTPStatus())
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     appErr.HTTPStatus(),
		Category: appErr.Category(),
		Detail:   appErr.Error(),
	})
}
