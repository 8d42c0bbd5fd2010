package addressrepo

import (
	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/repository/crud"
)

// AddressRepository é o CRUD genérico da tabela endereco.
type AddressRepository struct {
	*crud.Table[domain.Address]
}

func NewAddressRepository(log logger.Logger) *AddressRepository {
	return &AddressRepository{Table: crud.New(crud.Schema[domain.Address]{
		Table:   "endereco",
		Select:  []string{"endereco.id", "endereco.numero", "endereco.cep"},
		Columns: []string{"numero", "cep"},
		Scan: func(s crud.Scanner) (domain.Address, error) {
			var a domain.Address
			err := s.Scan(&a.ID, &a.Number, &a.PostalCode)
			return a, err
		},
		Values:   func(a domain.Address) []any { return []any{a.Number, a.PostalCode} },
		NotFound: apperror.ErrAddressNotFound,
	}, log)}
}
