// Package crudservice implementa o contrato de cinco operações (buscar, listar,
// criar, atualizar, remover) comum a todas as entidades. Cada operação roda
// dentro de exatamente uma unidade de trabalho.
package crudservice

import (
	"context"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
)

// Getter resolve uma entidade pelo id, devolvendo o NotFound da sua família.
type Getter[T domain.Entity] interface {
	Get(ctx context.Context, q database.Querier, id int64) (T, error)
}

// Repository define o contrato que o serviço genérico espera da camada de Persistência.
type Repository[T domain.Entity] interface {
	Getter[T]
	Page(ctx context.Context, q database.Querier, offset, limit int) ([]T, error)
	Insert(ctx context.Context, q database.Querier, row T) (T, error)
	Update(ctx context.Context, q database.Querier, row T) (T, error)
	Delete(ctx context.Context, q database.Querier, id int64) error
}

// BuildFunc valida a entrada e monta a linha a gravar. id é zero na criação.
type BuildFunc[T domain.Entity, In any] func(id int64, in In) (T, error)

// HydrateFunc anexa as relações de uma linha lida (opcional).
type HydrateFunc[T domain.Entity] func(ctx context.Context, q database.Querier, row *T) error

// Service é o serviço genérico de uma entidade.
type Service[T domain.Entity, In any] struct {
	name    string
	uow     database.UnitOfWork
	repo    Repository[T]
	build   BuildFunc[T, In]
	hydrate HydrateFunc[T]
	logger  logger.Logger
}

// NewService cria o serviço. name identifica a entidade nos logs.
func NewService[T domain.Entity, In any](name string, uow database.UnitOfWork, repo Repository[T], build BuildFunc[T, In], log logger.Logger) *Service[T, In] {
	return &Service[T, In]{name: name, uow: uow, repo: repo, build: build, logger: log}
}

// WithHydrate registra o gancho de hidratação aplicado a Get, Page, Create e Update.
func (s *Service[T, In]) WithHydrate(h HydrateFunc[T]) *Service[T, In] {
	s.hydrate = h
	return s
}

// Hydrate aplica o gancho registrado (se houver) à linha.
func (s *Service[T, In]) Hydrate(ctx context.Context, q database.Querier, row *T) error {
	if s.hydrate == nil {
		return nil
	}
	return s.hydrate(ctx, q, row)
}

// Get busca a entidade pelo id.
func (s *Service[T, In]) Get(ctx context.Context, id int64) (T, error) {
	s.logger.Debug("Iniciando busca por ID no serviço.", map[string]interface{}{"entidade": s.name, "id": id})

	var out T
	err := s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		row, err := s.repo.Get(ctx, q, id)
		if err != nil {
			return err
		}
		if err := s.Hydrate(ctx, q, &row); err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Page lista as entidades ordenadas por id.
func (s *Service[T, In]) Page(ctx context.Context, offset, limit int) (domain.Page[T], error) {
	s.logger.Debug("Iniciando listagem no serviço.", map[string]interface{}{"entidade": s.name, "offset": offset, "limit": limit})

	var rows []T
	err := s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		var err error
		if rows, err = s.repo.Page(ctx, q, offset, limit); err != nil {
			return err
		}
		return s.HydrateAll(ctx, q, rows)
	})
	if err != nil {
		return domain.Page[T]{}, err
	}
	return domain.NewPage(offset, limit, rows), nil
}

// HydrateAll aplica o gancho a cada linha da lista.
func (s *Service[T, In]) HydrateAll(ctx context.Context, q database.Querier, rows []T) error {
	for i := range rows {
		if err := s.Hydrate(ctx, q, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// Create valida a entrada e grava uma nova entidade.
func (s *Service[T, In]) Create(ctx context.Context, in In) (T, error) {
	var zero T
	row, err := s.buildRow(0, in)
	if err != nil {
		return zero, err
	}

	var out T
	err = s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		created, err := s.repo.Insert(ctx, q, row)
		if err != nil {
			return err
		}
		if err := s.Hydrate(ctx, q, &created); err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return zero, err
	}

	s.logger.Info("Registro criado com sucesso.", map[string]interface{}{"entidade": s.name, "id": out.EntityID()})
	return out, nil
}

// Update substitui todos os campos graváveis da entidade id.
func (s *Service[T, In]) Update(ctx context.Context, id int64, in In) (T, error) {
	var zero T
	row, err := s.buildRow(id, in)
	if err != nil {
		return zero, err
	}

	var out T
	err = s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		if _, err := s.repo.Get(ctx, q, id); err != nil {
			return err
		}
		updated, err := s.repo.Update(ctx, q, row)
		if err != nil {
			return err
		}
		if err := s.Hydrate(ctx, q, &updated); err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return zero, err
	}

	s.logger.Info("Registro atualizado com sucesso.", map[string]interface{}{"entidade": s.name, "id": id})
	return out, nil
}

// Delete remove a entidade id.
func (s *Service[T, In]) Delete(ctx context.Context, id int64) error {
	err := s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		return s.repo.Delete(ctx, q, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Registro removido com sucesso.", map[string]interface{}{"entidade": s.name, "id": id})
	return nil
}

func (s *Service[T, In]) buildRow(id int64, in In) (T, error) {
	if s.build == nil {
		var zero T
		return zero, apperror.NewInternalError("serviço "+s.name+" sem função de construção", nil)
	}
	row, err := s.build(id, in)
	if err != nil {
		s.logger.Warn("Falha na validação da entrada.", map[string]interface{}{"entidade": s.name, "error": err.Error()})
	}
	return row, err
}
