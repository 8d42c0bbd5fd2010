package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer é gravado na claim "iss" de todo token emitido.
const Issuer = "GoCorretora-API"

// ErrInvalidToken é encapsulado por toda falha de validação.
var ErrInvalidToken = errors.New("token inválido")

// TokenService define o contrato para manipulação de JWTs.
type TokenService interface {
	GenerateToken(subject string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims carrega o identificador do usuário autenticado (o e-mail).
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Service implementa TokenService com assinatura HMAC.
type Service struct {
	secretKey []byte
	method    jwt.SigningMethod
	expiry    time.Duration
	now       func() time.Time
}

// Option altera a configuração do Service.
type Option func(*Service)

// WithClock substitui o relógio usado na emissão e na validação.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService cria o serviço de tokens. Apenas HS256, HS384 e HS512 são aceitos.
func NewService(secretKey, algorithm string, expiry time.Duration, opts ...Option) (*Service, error) {
	if secretKey == "" {
		return nil, errors.New("chave secreta do JWT não pode ser vazia")
	}

	var method jwt.SigningMethod
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("algoritmo de assinatura não suportado: %q", algorithm)
	}

	s := &Service{
		secretKey: []byte(secretKey),
		method:    method,
		expiry:    expiry,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GenerateToken cria um novo JWT assinado para o subject informado.
func (s *Service) GenerateToken(subject string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
		},
	}

	tokenString, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken valida assinatura, algoritmo e expiração e retorna as claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return s.secretKey, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
