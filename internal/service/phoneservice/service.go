package phoneservice

import (
	"context"
	"strings"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/service/crudservice"
)

// PhoneRepository define o contrato que o Serviço de Telefones espera da camada de Persistência.
type PhoneRepository interface {
	crudservice.Repository[domain.Phone]
	ByUser(ctx context.Context, q database.Querier, userID int64, offset, limit int) ([]domain.Phone, error)
}

// Service implementa as operações de telefones. O dono do telefone pode ser
// usuário de qualquer tipo.
type Service struct {
	*crudservice.Service[domain.Phone, domain.PhoneInput]

	uow    database.UnitOfWork
	repo   PhoneRepository
	users  crudservice.Getter[domain.Person]
	logger logger.Logger
}

// NewService cria o serviço de telefones. users deve enxergar a família inteira.
func NewService(uow database.UnitOfWork, repo PhoneRepository, users crudservice.Getter[domain.Person], log logger.Logger) *Service {
	s := &Service{uow: uow, repo: repo, users: users, logger: log}
	s.Service = crudservice.NewService[domain.Phone, domain.PhoneInput]("telefone", uow, repo, Build, log).
		WithHydrate(s.hydrate)
	return s
}

// Build valida a entrada e monta o telefone.
func Build(id int64, in domain.PhoneInput) (domain.Phone, error) {
	number := strings.TrimSpace(in.Number)
	if number == "" {
		return domain.Phone{}, apperror.NewValidationError("O número do telefone não pode ser vazio.")
	}
	return domain.Phone{ID: id, UserID: in.UserID, Number: number, Type: in.Type}, nil
}

// Create resolve o usuário e grava o telefone.
func (s *Service) Create(ctx context.Context, in domain.PhoneInput) (domain.Phone, error) {
	return s.write(ctx, 0, in)
}

// Update resolve o usuário e substitui o telefone id.
func (s *Service) Update(ctx context.Context, id int64, in domain.PhoneInput) (domain.Phone, error) {
	return s.write(ctx, id, in)
}

func (s *Service) write(ctx context.Context, id int64, in domain.PhoneInput) (domain.Phone, error) {
	row, err := Build(id, in)
	if err != nil {
		s.logger.Warn("Falha na validação do telefone.", map[string]interface{}{"error": err.Error()})
		return domain.Phone{}, err
	}

	var out domain.Phone
	err = s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		if id != 0 {
			if _, err := s.repo.Get(ctx, q, id); err != nil {
				return err
			}
		}

		user, err := s.users.Get(ctx, q, in.UserID)
		if err != nil {
			return err
		}

		if id == 0 {
			out, err = s.repo.Insert(ctx, q, row)
		} else {
			out, err = s.repo.Update(ctx, q, row)
		}
		if err != nil {
			return err
		}
		out.User = &user
		return nil
	})
	if err != nil {
		return domain.Phone{}, err
	}

	s.logger.Info("Telefone gravado com sucesso.", map[string]interface{}{"id": out.ID, "id_usuario": out.UserID})
	return out, nil
}

// ListByUser lista os telefones de um usuário existente (de qualquer tipo).
func (s *Service) ListByUser(ctx context.Context, userID int64, offset, limit int) (domain.Page[domain.Phone], error) {
	var rows []domain.Phone
	err := s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		if _, err := s.users.Get(ctx, q, userID); err != nil {
			return err
		}
		var err error
		if rows, err = s.repo.ByUser(ctx, q, userID, offset, limit); err != nil {
			return err
		}
		return s.HydrateAll(ctx, q, rows)
	})
	if err != nil {
		return domain.Page[domain.Phone]{}, err
	}
	return domain.NewPage(offset, limit, rows), nil
}

func (s *Service) hydrate(ctx context.Context, q database.Querier, p *domain.Phone) error {
	user, err := s.users.Get(ctx, q, p.UserID)
	if err != nil {
		return err
	}
	p.User = &user
	return nil
}
