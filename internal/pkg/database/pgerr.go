package database

import (
	"errors"

	"github.com/lib/pq"
)

// Códigos SQLSTATE do PostgreSQL tratados pela aplicação.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// Violation descreve uma violação de restrição reportada pelo banco.
type Violation struct {
	Code       string
	Constraint string
}

// AsViolation extrai a violação de unicidade ou de chave estrangeira contida em err.
func AsViolation(err error) (Violation, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return Violation{}, false
	}
	code := string(pqErr.Code)
	if code != CodeUniqueViolation && code != CodeForeignKeyViolation {
		return Violation{}, false
	}
	return Violation{Code: code, Constraint: pqErr.Constraint}, true
}
