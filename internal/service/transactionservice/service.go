package transactionservice

import (
	"context"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/service/crudservice"
)

// TransactionRepository define o contrato que o Serviço de Transações espera da camada de Persistência.
type TransactionRepository interface {
	crudservice.Repository[domain.Transaction]
	ByBroker(ctx context.Context, q database.Querier, brokerID int64, offset, limit int) ([]domain.Transaction, error)
}

// Service implementa as operações de transações.
type Service struct {
	*crudservice.Service[domain.Transaction, domain.TransactionInput]

	uow        database.UnitOfWork
	repo       TransactionRepository
	brokers    crudservice.Getter[domain.Person] // escopado a corretores
	properties crudservice.Getter[domain.Property]
	logger     logger.Logger
}

// NewService cria o serviço de transações.
func NewService(uow database.UnitOfWork, repo TransactionRepository, brokers crudservice.Getter[domain.Person],
	properties crudservice.Getter[domain.Property], log logger.Logger) *Service {
	s := &Service{uow: uow, repo: repo, brokers: brokers, properties: properties, logger: log}
	s.Service = crudservice.NewService[domain.Transaction, domain.TransactionInput]("transacao", uow, repo, Build, log).
		WithHydrate(s.hydrate)
	return s
}

// Build valida a entrada e monta a transação.
func Build(id int64, in domain.TransactionInput) (domain.Transaction, error) {
	if in.Date.IsZero() {
		return domain.Transaction{}, apperror.NewValidationError("A data da transação é obrigatória.")
	}
	if in.Total < 0 {
		return domain.Transaction{}, apperror.NewValidationError("O valor total não pode ser negativo.")
	}
	return domain.Transaction{
		ID:         id,
		BrokerID:   in.BrokerID,
		PropertyID: in.PropertyID,
		Date:       in.Date,
		Total:      in.Total,
	}, nil
}

// Create resolve corretor e imóvel (nesta ordem) e grava a transação.
func (s *Service) Create(ctx context.Context, in domain.TransactionInput) (domain.Transaction, error) {
	return s.write(ctx, 0, in)
}

// Update resolve corretor e imóvel e substitui a transação id.
func (s *Service) Update(ctx context.Context, id int64, in domain.TransactionInput) (domain.Transaction, error) {
	return s.write(ctx, id, in)
}

func (s *Service) write(ctx context.Context, id int64, in domain.TransactionInput) (domain.Transaction, error) {
	s.logger.Debug("Iniciando gravação de transação no serviço.", map[string]interface{}{"id": id, "id_corretor": in.BrokerID, "id_imovel": in.PropertyID})

	row, err := Build(id, in)
	if err != nil {
		s.logger.Warn("Falha na validação da transação.", map[string]interface{}{"error": err.Error()})
		return domain.Transaction{}, err
	}

	var out domain.Transaction
	err = s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		if id != 0 {
			if _, err := s.repo.Get(ctx, q, id); err != nil {
				return err
			}
		}

		broker, property, err := s.resolve(ctx, q, in.BrokerID, in.PropertyID)
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
		out.Broker = &broker
		out.Property = &property
		return nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	s.logger.Info("Transação gravada com sucesso.", map[string]interface{}{"id": out.ID})
	return out, nil
}

// ListByBroker lista as transações de um corretor existente.
func (s *Service) ListByBroker(ctx context.Context, brokerID int64, offset, limit int) (domain.Page[domain.Transaction], error) {
	var rows []domain.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		if _, err := s.brokers.Get(ctx, q, brokerID); err != nil {
			return err
		}
		var err error
		if rows, err = s.repo.ByBroker(ctx, q, brokerID, offset, limit); err != nil {
			return err
		}
		return s.HydrateAll(ctx, q, rows)
	})
	if err != nil {
		return domain.Page[domain.Transaction]{}, err
	}
	return domain.NewPage(offset, limit, rows), nil
}

func (s *Service) resolve(ctx context.Context, q database.Querier, brokerID, propertyID int64) (domain.Person, domain.Property, error) {
	broker, err := s.brokers.Get(ctx, q, brokerID)
	if err != nil {
		return domain.Person{}, domain.Property{}, err
	}
	property, err := s.properties.Get(ctx, q, propertyID)
	if err != nil {
		return domain.Person{}, domain.Property{}, err
	}
	return broker, property, nil
}

func (s *Service) hydrate(ctx context.Context, q database.Querier, t *domain.Transaction) error {
	broker, property, err := s.resolve(ctx, q, t.BrokerID, t.PropertyID)
	if err != nil {
		return err
	}
	t.Broker = &broker
	t.Property = &property
	return nil
}
