package tagservice

import (
	"strings"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/service/crudservice"
)

// Service é o CRUD genérico de tags.
type Service = crudservice.Service[domain.Tag, domain.TagInput]

// NewService cria o serviço de tags.
func NewService(uow database.UnitOfWork, repo crudservice.Repository[domain.Tag], log logger.Logger) *Service {
	return crudservice.NewService[domain.Tag, domain.TagInput]("tag", uow, repo, Build, log)
}

// Build valida a entrada e monta a tag.
func Build(id int64, in domain.TagInput) (domain.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Tag{}, apperror.NewValidationError("O nome da tag não pode ser vazio.")
	}
	return domain.Tag{ID: id, Name: name, Category: in.Category}, nil
}
