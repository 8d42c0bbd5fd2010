package authservice

import (
	"context"
	"strings"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
)

// UserService é o subconjunto do serviço de pessoas (tipo usuário) usado na autenticação.
type UserService interface {
	Create(ctx context.Context, in domain.PersonInput) (domain.Person, error)
	Check(ctx context.Context, email, password string) (bool, error)
}

// TokenIssuer é o contrato da camada de token (internal/pkg/token).
type TokenIssuer interface {
	GenerateToken(subject string) (string, error)
}

// Service implementa signup e login.
type Service struct {
	users  UserService
	tokens TokenIssuer
	logger logger.Logger
}

// NewService cria o serviço de autenticação.
func NewService(users UserService, tokens TokenIssuer, log logger.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: log}
}

// Signup cadastra um usuário comum e devolve um token para ele.
func (s *Service) Signup(ctx context.Context, in domain.PersonInput) (domain.AccessToken, error) {
	user, err := s.users.Create(ctx, in)
	if err != nil {
		return domain.AccessToken{}, err
	}

	s.logger.Info("Usuário cadastrado via signup.", map[string]interface{}{"id": user.ID})
	return s.issue(user.Email)
}

// Login confere as credenciais e devolve um token. Qualquer falha de credencial
// resulta em ErrBadCredentials.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.AccessToken, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return domain.AccessToken{}, apperror.ErrBadCredentials
	}

	ok, err := s.users.Check(ctx, email, creds.Password)
	if err != nil {
		return domain.AccessToken{}, err
	}
	if !ok {
		s.logger.Info("Tentativa de login com credenciais inválidas.", map[string]interface{}{"email_attempt": email})
		return domain.AccessToken{}, apperror.ErrBadCredentials
	}

	return s.issue(email)
}

func (s *Service) issue(subject string) (domain.AccessToken, error) {
	tokenString, err := s.tokens.GenerateToken(subject)
	if err != nil {
		s.logger.Error("Falha ao gerar token de autenticação.", err)
		return domain.AccessToken{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return domain.AccessToken{AccessToken: tokenString}, nil
}
