package personservice

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/service/crudservice"
)

// PersonRepository define o contrato que o Serviço de Pessoas espera da camada de Persistência.
type PersonRepository interface {
	crudservice.Repository[domain.Person]
	FindByEmail(ctx context.Context, q database.Querier, email string) (domain.Person, bool, error)
	FindByCPF(ctx context.Context, q database.Querier, cpf string) (domain.Person, bool, error)
}

// PasswordHasher é o contrato do pacote internal/pkg/password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// Service implementa as operações de usuários, proprietários ou corretores,
// conforme o tipo com que foi criado.
type Service struct {
	*crudservice.Service[domain.Person, domain.PersonInput]

	kind          domain.Kind
	uow           database.UnitOfWork
	repo          PersonRepository // escopado ao tipo
	family        PersonRepository // enxerga todos os tipos
	hasher        PasswordHasher
	alreadyExists error
	logger        logger.Logger
}

// NewService cria o serviço do tipo kind. repo deve estar escopado a kind;
// family enxerga a família inteira e é usado nas checagens de unicidade.
func NewService(kind domain.Kind, uow database.UnitOfWork, repo, family PersonRepository, hasher PasswordHasher, log logger.Logger) *Service {
	alreadyExists := apperror.ErrUserAlreadyExists
	switch kind {
	case domain.KindOwner:
		alreadyExists = apperror.ErrOwnerAlreadyExists
	case domain.KindBroker:
		alreadyExists = apperror.ErrBrokerAlreadyExists
	}

	return &Service{
		// Create e Update são sobrescritos abaixo; a construção genérica não é usada.
		Service:       crudservice.NewService[domain.Person, domain.PersonInput](string(kind), uow, repo, nil, log),
		kind:          kind,
		uow:           uow,
		repo:          repo,
		family:        family,
		hasher:        hasher,
		alreadyExists: alreadyExists,
		logger:        log,
	}
}

// Kind retorna o tipo servido por este serviço.
func (s *Service) Kind() domain.Kind { return s.kind }

// Check confere as credenciais. E-mail inexistente resulta em false, nunca em erro.
func (s *Service) Check(ctx context.Context, email, password string) (bool, error) {
	s.logger.Debug("Iniciando verificação de credenciais.", map[string]interface{}{"email_attempt": email, "tipo": s.kind})

	var (
		person domain.Person
		found  bool
	)
	err := s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		var err error
		person, found, err = s.repo.FindByEmail(ctx, q, strings.TrimSpace(email))
		return err
	})
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return s.hasher.Verify(person.PasswordHash, password), nil
}

// FindByEmail busca em toda a família pelo e-mail.
func (s *Service) FindByEmail(ctx context.Context, email string) (domain.Person, bool, error) {
	return s.lookup(ctx, func(ctx context.Context, q database.Querier) (domain.Person, bool, error) {
		return s.family.FindByEmail(ctx, q, email)
	})
}

// FindByCPF busca em toda a família pelo CPF.
func (s *Service) FindByCPF(ctx context.Context, cpf string) (domain.Person, bool, error) {
	return s.lookup(ctx, func(ctx context.Context, q database.Querier) (domain.Person, bool, error) {
		return s.family.FindByCPF(ctx, q, normalizeCPF(cpf))
	})
}

func (s *Service) lookup(ctx context.Context, find func(context.Context, database.Querier) (domain.Person, bool, error)) (domain.Person, bool, error) {
	var (
		person domain.Person
		found  bool
	)
	err := s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		var err error
		person, found, err = find(ctx, q)
		return err
	})
	return person, found, err
}

// Create valida a entrada, garante e-mail e CPF únicos na família, gera o hash
// da senha e grava a pessoa com a linha do subtipo.
func (s *Service) Create(ctx context.Context, in domain.PersonInput) (domain.Person, error) {
	s.logger.Debug("Iniciando criação de pessoa no serviço.", map[string]interface{}{"email": in.Email, "tipo": s.kind})

	in, err := s.validate(in, true)
	if err != nil {
		s.logger.Warn("Falha na validação da pessoa.", map[string]interface{}{"email": in.Email, "error": err.Error()})
		return domain.Person{}, err
	}

	var created domain.Person
	err = s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		if err := s.ensureUnique(ctx, q, 0, in); err != nil {
			return err
		}

		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return err
		}

		created, err = s.repo.Insert(ctx, q, s.toPerson(0, s.kind, in, hash))
		return err
	})
	if err != nil {
		return domain.Person{}, err
	}

	s.logger.Info("Pessoa criada com sucesso.", map[string]interface{}{"id": created.ID, "tipo": created.Kind})
	return created, nil
}

// Update substitui os dados da pessoa id. Senha vazia mantém o hash atual.
func (s *Service) Update(ctx context.Context, id int64, in domain.PersonInput) (domain.Person, error) {
	s.logger.Debug("Iniciando atualização de pessoa no serviço.", map[string]interface{}{"id": id, "tipo": s.kind})

	in, err := s.validate(in, false)
	if err != nil {
		s.logger.Warn("Falha na validação da pessoa.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Person{}, err
	}

	var updated domain.Person
	err = s.uow.Do(ctx, func(ctx context.Context, q database.Querier) error {
		current, err := s.repo.Get(ctx, q, id)
		if err != nil {
			return err
		}
		if err := s.ensureUnique(ctx, q, id, in); err != nil {
			return err
		}

		hash := current.PasswordHash
		if in.Password != "" {
			if hash, err = s.hasher.Hash(in.Password); err != nil {
				return err
			}
		}

		row := s.toPerson(id, current.Kind, in, hash)
		if s.kind != domain.KindBroker && current.Broker != nil {
			// atualização via outro tipo não altera a comissão do corretor
			row.Broker = current.Broker
		}

		updated, err = s.repo.Update(ctx, q, row)
		return err
	})
	if err != nil {
		return domain.Person{}, err
	}

	s.logger.Info("Pessoa atualizada com sucesso.", map[string]interface{}{"id": id, "tipo": updated.Kind})
	return updated, nil
}

// ensureUnique é a checagem rápida de e-mail e CPF em toda a família.
// A restrição do banco continua sendo a autoridade final.
func (s *Service) ensureUnique(ctx context.Context, q database.Querier, selfID int64, in domain.PersonInput) error {
	if other, found, err := s.family.FindByEmail(ctx, q, in.Email); err != nil {
		return err
	} else if found && other.ID != selfID {
		s.logger.Info("E-mail já cadastrado.", map[string]interface{}{"email": in.Email})
		return s.alreadyExists
	}

	if other, found, err := s.family.FindByCPF(ctx, q, in.CPF); err != nil {
		return err
	} else if found && other.ID != selfID {
		s.logger.Info("CPF já cadastrado.", map[string]interface{}{"id_existente": other.ID})
		return s.alreadyExists
	}
	return nil
}

func (s *Service) toPerson(id int64, kind domain.Kind, in domain.PersonInput, hash string) domain.Person {
	p := domain.Person{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CPF:          in.CPF,
		PhotoPath:    in.PhotoPath,
		Kind:         kind,
	}
	if kind == domain.KindBroker {
		p.Broker = &domain.BrokerProfile{CommissionPct: in.CommissionPct}
	}
	return p
}

// validate normaliza e valida a entrada. A senha só é obrigatória na criação.
func (s *Service) validate(in domain.PersonInput, creating bool) (domain.PersonInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.CPF = normalizeCPF(in.CPF)

	if in.Name == "" {
		return in, apperror.NewValidationError("O nome não pode ser vazio.")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil || strings.ContainsAny(in.Email, "<> ") {
		return in, apperror.NewValidationError(fmt.Sprintf("E-mail inválido: '%s'.", in.Email))
	}
	if in.CPF == "" {
		return in, apperror.NewValidationError("O CPF não pode ser vazio.")
	}
	if creating && in.Password == "" {
		return in, apperror.NewValidationError("A senha é obrigatória.")
	}
	if s.kind == domain.KindBroker && (in.CommissionPct < 0 || in.CommissionPct > 100) {
		return in, apperror.NewValidationError("O percentual de comissão deve estar entre 0 e 100.")
	}
	return in, nil
}

// normalizeCPF remove a máscara (pontos, hífen e espaços).
func normalizeCPF(cpf string) string {
	return strings.NewReplacer(".", "", "-", "", " ", "").Replace(cpf)
}
