package auth

import (
	"context"
	"net/http"

	"gocorretora/internal/api/respond"
	"gocorretora/internal/domain"
	"gocorretora/internal/pkg/logger"
)

// AuthService define o contrato que o Handler espera da camada de Serviço.
type AuthService interface {
	Signup(ctx context.Context, in domain.PersonInput) (domain.AccessToken, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.AccessToken, error)
}

// Handler agrupa os handlers públicos de autenticação.
type Handler struct {
	Service AuthService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// SignupHandler lida com a requisição POST /api/signup.
// @Summary Cadastra um usuário
// @Description Cria um usuário comum e devolve um token de acesso.
// @Tags auth
// @Accept json
// @Produce json
// @Param usuario body domain.PersonInput true "Dados do usuário"
// @Success 200 {object} domain.AccessToken "Token de acesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "EMAIL_OU_CPF_DUPLICADO"
// @Router /signup [post]
func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.PersonInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	tok, err := h.Service.Signup(r.Context(), in)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, tok)
}

// LoginHandler lida com a requisição POST /api/login.
// @Summary Autentica um usuário
// @Description Confere e-mail e senha e devolve um token de acesso.
// @Tags auth
// @Accept json
// @Produce json
// @Param credenciais body domain.Credentials true "E-mail e senha"
// @Success 200 {object} domain.AccessToken "Token de acesso"
// @Failure 400 {object} domain.ErrorResponse "USUARIO_INCORRETO"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := respond.Decode(r, &creds); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	tok, err := h.Service.Login(r.Context(), creds)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, tok)
}
