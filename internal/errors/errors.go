package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados da corretora.
// Ela permite que o código externo (Handler) acesse a Categoria e o status HTTP do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// Categorias usadas pelos erros de entidade.
const (
	CategoryNotFound       = "NOT_FOUND"
	CategoryAlreadyExists  = "ALREADY_EXISTS"
	CategoryAddressTaken   = "ADDRESS_TAKEN"
	CategoryBadCredentials = "BAD_CREDENTIALS"
)

// --- Famílias de Entidades ---

// Family identifica uma família de entidades. Proprietário e Corretor são filhos de Usuário,
// de modo que um erro de Corretor também pertence à família Usuário.
type Family string

const (
	FamilyUser        Family = "usuario"
	FamilyOwner       Family = "proprietario"
	FamilyBroker      Family = "corretor"
	FamilyProperty    Family = "imovel"
	FamilyTag         Family = "tag"
	FamilyAddress     Family = "endereco"
	FamilyPhone       Family = "telefone"
	FamilyTransaction Family = "transacao"
)

// Parent retorna a família raiz, ou "" quando a família não tem pai.
func (f Family) Parent() Family {
	switch f {
	case FamilyOwner, FamilyBroker:
		return FamilyUser
	}
	return ""
}

// EntityError é um erro de domínio com status e detalhe fixos.
// Não encapsula nenhum outro erro.
type EntityError struct {
	family   Family
	category string
	status   int
	detail   string
}

func newEntityError(family Family, category string, status int, detail string) *EntityError {
	return &EntityError{family: family, category: category, status: status, detail: detail}
}

func (e *EntityError) Error() string    { return e.detail }
func (e *EntityError) Category() string { return e.category }
func (e *EntityError) HTTPStatus() int  { return e.status }
func (e *EntityError) Unwrap() error    { return nil }

// Detail retorna o código legível por máquina (e.g., "USUARIO_NAO_ENCONTRADO").
func (e *EntityError) Detail() string { return e.detail }

// Family retorna a família da entidade que originou o erro.
func (e *EntityError) Family() Family { return e.family }

var (
	ErrUserNotFound      = newEntityError(FamilyUser, CategoryNotFound, http.StatusNotFound, "USUARIO_NAO_ENCONTRADO")
	ErrUserAlreadyExists = newEntityError(FamilyUser, CategoryAlreadyExists, http.StatusConflict, "EMAIL_OU_CPF_DUPLICADO")
	ErrBadCredentials    = newEntityError(FamilyUser, CategoryBadCredentials, http.StatusBadRequest, "USUARIO_INCORRETO")

	ErrOwnerNotFound      = newEntityError(FamilyOwner, CategoryNotFound, http.StatusNotFound, "PROPRIETARIO_NAO_ENCONTRADO")
	ErrOwnerAlreadyExists = newEntityError(FamilyOwner, CategoryAlreadyExists, http.StatusConflict, "EMAIL_OU_CPF_DUPLICADO")

	ErrBrokerNotFound      = newEntityError(FamilyBroker, CategoryNotFound, http.StatusNotFound, "CORRETOR_NAO_ENCONTRADO")
	ErrBrokerAlreadyExists = newEntityError(FamilyBroker, CategoryAlreadyExists, http.StatusConflict, "EMAIL_OU_CPF_DUPLICADO")

	ErrPropertyNotFound = newEntityError(FamilyProperty, CategoryNotFound, http.StatusNotFound, "IMOVEL_NAO_ENCONTRADO")

	ErrTagNotFound = newEntityError(FamilyTag, CategoryNotFound, http.StatusNotFound, "TAG_NAO_ENCONTRADA")

	ErrAddressNotFound     = newEntityError(FamilyAddress, CategoryNotFound, http.StatusNotFound, "ENDERECO_NAO_ENCONTRADO")
	ErrAddressAlreadyTaken = newEntityError(FamilyAddress, CategoryAddressTaken, http.StatusConflict, "ENDERECO_JA_CADASTRADO")

	ErrPhoneNotFound = newEntityError(FamilyPhone, CategoryNotFound, http.StatusNotFound, "TELEFONE_NAO_ENCONTRADO")

	ErrTransactionNotFound = newEntityError(FamilyTransaction, CategoryNotFound, http.StatusNotFound, "TRANSACAO_NAO_ENCONTRADA")
)

// InFamily informa se err é um EntityError da família f ou de uma família filha de f.
func InFamily(err error, f Family) bool {
	var entityErr *EntityError
	if !stderrors.As(err, &entityErr) {
		return false
	}
	for fam := entityErr.family; fam != ""; fam = fam.Parent() {
		if fam == f {
			return true
		}
	}
	return false
}

// IsNotFound informa se err é um erro de entidade inexistente (qualquer família).
func IsNotFound(err error) bool {
	return hasCategory(err, CategoryNotFound)
}

// IsAlreadyExists informa se err é um erro de duplicidade (qualquer família).
func IsAlreadyExists(err error) bool {
	return hasCategory(err, CategoryAlreadyExists)
}

func hasCategory(err error, category string) bool {
	var entityErr *EntityError
	return stderrors.As(err, &entityErr) && entityErr.category == category
}

// --- Tipos de Erro Genéricos ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError representa a ausência de credenciais válidas (token ausente, inválido ou expirado).
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ConflictError representa um conflito de estado (e.g., registro referenciado por outra tabela).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return e.Msg }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Erro Interno: %s", e.Msg)
	}
	return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(msg+" (DB)", err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para status HTTP, categoria e detalhe.
// Erros internos nunca expõem a causa subjacente ao cliente.
func MapToHTTPStatus(err error) (int, string, string) {
	var entityErr *EntityError
	if stderrors.As(err, &entityErr) {
		return entityErr.status, entityErr.category, entityErr.detail
	}

	var appErr AppError
	if stderrors.As(err, &appErr) {
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			return appErr.HTTPStatus(), appErr.Category(), "ERRO_INTERNO"
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", "ERRO_INESPERADO"
}
