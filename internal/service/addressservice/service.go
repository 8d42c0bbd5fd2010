package addressservice

import (
	"strings"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/service/crudservice"
)

// Service é o CRUD genérico de endereços.
type Service = crudservice.Service[domain.Address, domain.AddressInput]

// NewService cria o serviço de endereços.
func NewService(uow database.UnitOfWork, repo crudservice.Repository[domain.Address], log logger.Logger) *Service {
	return crudservice.NewService[domain.Address, domain.AddressInput]("endereco", uow, repo, Build, log)
}

// Build valida a entrada e monta o endereço. O CEP é gravado sem máscara.
func Build(id int64, in domain.AddressInput) (domain.Address, error) {
	cep := strings.NewReplacer("-", "", ".", "", " ", "").Replace(in.PostalCode)
	if cep == "" {
		return domain.Address{}, apperror.NewValidationError("O CEP não pode ser vazio.")
	}
	if in.Number < 0 {
		return domain.Address{}, apperror.NewValidationError("O número do endereço não pode ser negativo.")
	}
	return domain.Address{ID: id, Number: in.Number, PostalCode: cep}, nil
}
