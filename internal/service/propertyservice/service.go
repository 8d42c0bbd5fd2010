package propertyservice

import (
	"context"
	"strings"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/service/crudservice"
)

// PropertyRepository define o contrato que o Serviço de Imóveis espera da camada de Persistência.
type PropertyRepository interface {
	crudservice.Repository[domain.Property]
	FindByAddress(ctx context.Context, q database.Querier, addressID int64) (domain.Property, bool, error)
	ByOwner(ctx context.Context, q database.Querier, ownerID int64, offset, limit int) ([]domain.Property, error)
	AttachTags(ctx context.Context, q database.Querier, propertyID int64, tagIDs []int64) error
	Tags(ctx context.Context, q database.Querier, propertyID int64) ([]domain.Tag, error)
}

// Service implementa as operações de imóveis.
type Service struct {
	*crudservice.Service[domain.Property, domain.PropertyInput]

	uow       database.UnitOfWork
	repo      PropertyRepository
	owners    crudservice.Getter[domain.Person] // escopado a proprietários
	addresses crudservice.Getter[domain.Address]
	tags      crudservice.Getter[domain.Tag]
	logger    logger.Logger
}

// NewService cria o serviço de imóveis.
func NewService(uow database.UnitOfWork, repo PropertyRepository, owners crudservice.Getter[domain.Person],
	addresses crudservice.Getter[domain.Address], tags crudservice.Getter[domain.Tag], log logger.Logger) *Service {
	s := &Service{
		uow:       uow,
		repo:      repo,
		owners:    owners,
		addresses: addresses,
		tags:      tags,
		logger:    log,
	}
	s.Service = crudservice.NewService[domain.Property, domain.PropertyInput]("imovel", uow, repo, Build, log).
		WithHydrate(s.hydrate)
	return s
}

// Build valida a entrada e monta o imóvel (sem relações).
func Build(id int64, in domain.PropertyInput) (domain.Property, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Property{}, apperror.NewValidationError("O nome do imóvel não pode ser vazio.")
	}
	if in.Price < 0 {
		return domain.Property{}, apperror.NewValidationError("O valor do imóvel não pode ser negativo.")
	}
	if in.Size < 0 || in.Rooms < 0 || in.ParkingSpots < 0 || in.Bathrooms < 0 {
		return domain.Property{}, apperror.NewValidationError("Tamanho, quartos, vagas e banheiros não podem ser negativos.")
	}

	return domain.Property{
		ID:           id,
		OwnerID:      in.OwnerID,
		AddressID:    in.AddressID,
		Name:         name,
		Type:         in.Type,
		Price:        in.Price,
		Description:  in.Description,
		Size:         in.Size,
		Rooms:        in.Rooms,
		ParkingSpots: in.ParkingSpots,
		Bathrooms:    in.Bathrooms,
		Available:    in.Available,
		PhotoPath:    in.PhotoPath,
	}, nil
}

// Create resolve proprietário, endereço e tags (nesta ordem), garante que o endereço
// está livre e grava o imóvel disponível com as tags associadas.
func (s *Service) Create(ctx context.Context, in domain.PropertyInput) (domain.Property, error) {
	s.logger.Debug("Iniciando criação de imóvel no serviço.", map[string]interface{}{"nome": in.Name, "id_proprietario": in.OwnerID})

	row, err := Build(0, in)
	if err != nil {
		s.logger.Warn("Falha na validação do imóvel.", map[string]interface{}{"error": err.Error()})
		return domain.Property{}, err
	}
	row.Available = true

	var created domain.Property
	err = s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		owner, address, err := s.resolve(ctx, q, in.OwnerID, in.AddressID)
		if err != nil {
			return err
		}

		tagIDs := dedupe(in.TagIDs)
		for _, id := range tagIDs {
			if _, err := s.tags.Get(ctx, q, id); err != nil {
				return err
			}
		}

		if err := s.ensureAddressFree(ctx, q, in.AddressID, 0); err != nil {
			return err
		}

		if created, err = s.repo.Insert(ctx, q, row); err != nil {
			return err
		}
		if len(tagIDs) > 0 {
			if err := s.repo.AttachTags(ctx, q, created.ID, tagIDs); err != nil {
				return err
			}
		}

		created.Owner = &owner
		created.Address = &address
		created.Tags, err = s.repo.Tags(ctx, q, created.ID)
		return err
	})
	if err != nil {
		return domain.Property{}, err
	}

	s.logger.Info("Imóvel criado com sucesso.", map[string]interface{}{"id": created.ID, "tags": len(created.Tags)})
	return created, nil
}

// Update substitui os campos do imóvel id. As tags não são alteradas.
func (s *Service) Update(ctx context.Context, id int64, in domain.PropertyInput) (domain.Property, error) {
	s.logger.Debug("Iniciando atualização de imóvel no serviço.", map[string]interface{}{"id": id})

	row, err := Build(id, in)
	if err != nil {
		s.logger.Warn("Falha na validação do imóvel.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Property{}, err
	}

	var updated domain.Property
	err = s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		if _, err := s.repo.Get(ctx, q, id); err != nil {
			return err
		}

		owner, address, err := s.resolve(ctx, q, in.OwnerID, in.AddressID)
		if err != nil {
			return err
		}
		if err := s.ensureAddressFree(ctx, q, in.AddressID, id); err != nil {
			return err
		}

		if updated, err = s.repo.Update(ctx, q, row); err != nil {
			return err
		}

		updated.Owner = &owner
		updated.Address = &address
		updated.Tags, err = s.repo.Tags(ctx, q, id)
		return err
	})
	if err != nil {
		return domain.Property{}, err
	}

	s.logger.Info("Imóvel atualizado com sucesso.", map[string]interface{}{"id": id})
	return updated, nil
}

// FindByAddress busca o imóvel que ocupa o endereço.
func (s *Service) FindByAddress(ctx context.Context, addressID int64) (domain.Property, bool, error) {
	var (
		p     domain.Property
		found bool
	)
	err := s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		var err error
		p, found, err = s.repo.FindByAddress(ctx, q, addressID)
		return err
	})
	return p, found, err
}

// ListByOwner lista os imóveis de um proprietário existente.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) (domain.Page[domain.Property], error) {
	var rows []domain.Property
	err := s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		if _, err := s.owners.Get(ctx, q, ownerID); err != nil {
			return err
		}
		var err error
		if rows, err = s.repo.ByOwner(ctx, q, ownerID, offset, limit); err != nil {
			return err
		}
		return s.HydrateAll(ctx, q, rows)
	})
	if err != nil {
		return domain.Page[domain.Property]{}, err
	}
	return domain.NewPage(offset, limit, rows), nil
}

// resolve garante que proprietário e endereço existem, nesta ordem.
func (s *Service) resolve(ctx context.Context, q database.Querier, ownerID, addressID int64) (domain.Person, domain.Address, error) {
	owner, err := s.owners.Get(ctx, q, ownerID)
	if err != nil {
		return domain.Person{}, domain.Address{}, err
	}
	address, err := s.addresses.Get(ctx, q, addressID)
	if err != nil {
		return domain.Person{}, domain.Address{}, err
	}
	return owner, address, nil
}

// ensureAddressFree falha se o endereço já abriga um imóvel diferente de selfID.
func (s *Service) ensureAddressFree(ctx context.Context, q database.Querier, addressID, selfID int64) error {
	other, found, err := s.repo.FindByAddress(ctx, q, addressID)
	if err != nil {
		return err
	}
	if found && other.ID != selfID {
		s.logger.Info("Endereço já ocupado por outro imóvel.", map[string]interface{}{"id_endereco": addressID, "id_imovel": other.ID})
		return apperror.ErrAddressAlreadyTaken
	}
	return nil
}

// hydrate anexa proprietário, endereço e tags ao imóvel.
func (s *Service) hydrate(ctx context.Context, q database.Querier, p *domain.Property) error {
	owner, address, err := s.resolve(ctx, q, p.OwnerID, p.AddressID)
	if err != nil {
		return err
	}
	p.Owner = &owner
	p.Address = &address
	p.Tags, err = s.repo.Tags(ctx, q, p.ID)
	return err
}

// dedupe remove ids repetidos preservando a ordem.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
