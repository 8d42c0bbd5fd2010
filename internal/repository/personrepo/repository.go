package personrepo

import (
	"context"
	"database/sql"
	"fmt"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/repository/crud"
)

const (
	insertOwnerSQL  = `INSERT INTO proprietario (id) VALUES ($1)`
	insertBrokerSQL = `INSERT INTO corretor (id, percentual_comissao) VALUES ($1, $2)`
	updateBrokerSQL = `UPDATE corretor SET percentual_comissao = $1 WHERE id = $2`
	brokerTableName = "corretor"
)

// PersonRepository lê e grava usuários, proprietários e corretores.
// Um repositório criado para KindUser enxerga a família inteira; os demais
// enxergam apenas as linhas do seu discriminador.
type PersonRepository struct {
	table  *crud.Table[domain.Person]
	kind   domain.Kind
	logger logger.Logger
}

type kindErrors struct {
	notFound      error
	alreadyExists error
}

func errorsFor(kind domain.Kind) kindErrors {
	switch kind {
	case domain.KindOwner:
		return kindErrors{apperror.ErrOwnerNotFound, apperror.ErrOwnerAlreadyExists}
	case domain.KindBroker:
		return kindErrors{apperror.ErrBrokerNotFound, apperror.ErrBrokerAlreadyExists}
	default:
		return kindErrors{apperror.ErrUserNotFound, apperror.ErrUserAlreadyExists}
	}
}

// NewPersonRepository cria o repositório do tipo informado.
func NewPersonRepository(kind domain.Kind, log logger.Logger) *PersonRepository {
	errs := errorsFor(kind)

	scope := ""
	if kind != domain.KindUser {
		// kind é uma constante do domínio, nunca entrada do usuário
		scope = fmt.Sprintf("usuario.tipo = '%s'", kind)
	}

	schema := crud.Schema[domain.Person]{
		Table: "usuario",
		Select: []string{
			"usuario.id", "usuario.nome", "usuario.email", "usuario.senha",
			"usuario.cpf", "usuario.path_foto", "usuario.tipo", "corretor.percentual_comissao",
		},
		Joins:   "LEFT JOIN corretor ON corretor.id = usuario.id",
		Scope:   scope,
		Columns: []string{"nome", "email", "senha", "cpf", "path_foto", "tipo"},
		Scan:    scanPerson,
		Values: func(p domain.Person) []any {
			return []any{p.Name, p.Email, p.PasswordHash, p.CPF, p.PhotoPath, string(p.Kind)}
		},
		NotFound: errs.notFound,
		Constraints: map[string]error{
			"usuario_email_key": errs.alreadyExists,
			"usuario_cpf_key":   errs.alreadyExists,
		},
	}

	return &PersonRepository{
		table:  crud.New(schema, log),
		kind:   kind,
		logger: log,
	}
}

// scanPerson monta a união a partir do discriminador gravado.
func scanPerson(s crud.Scanner) (domain.Person, error) {
	var (
		p    domain.Person
		kind string
		pct  sql.NullFloat64
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.CPF, &p.PhotoPath, &kind, &pct); err != nil {
		return domain.Person{}, err
	}
	p.Kind = domain.Kind(kind)
	if p.Kind == domain.KindBroker {
		p.Broker = &domain.BrokerProfile{CommissionPct: pct.Float64}
	}
	return p, nil
}

// Kind retorna o discriminador que escopa este repositório.
func (r *PersonRepository) Kind() domain.Kind { return r.kind }

func (r *PersonRepository) Get(ctx context.Context, q database.Querier, id int64) (domain.Person, error) {
	return r.table.Get(ctx, q, id)
}

func (r *PersonRepository) Page(ctx context.Context, q database.Querier, offset, limit int) ([]domain.Person, error) {
	return r.table.Page(ctx, q, offset, limit)
}

// Insert grava a linha de usuario e, conforme p.Kind, a linha do subtipo,
// na mesma transação.
func (r *PersonRepository) Insert(ctx context.Context, q database.Querier, p domain.Person) (domain.Person, error) {
	r.logger.Debug("Iniciando Insert de pessoa no repositório.", map[string]interface{}{"email": p.Email, "tipo": p.Kind})

	id, err := r.table.InsertID(ctx, q, p)
	if err != nil {
		return domain.Person{}, err
	}

	switch p.Kind {
	case domain.KindOwner:
		_, err = q.ExecContext(ctx, insertOwnerSQL, id)
	case domain.KindBroker:
		_, err = q.ExecContext(ctx, insertBrokerSQL, id, commission(p))
	}
	if err != nil {
		return domain.Person{}, crud.Translate(err, string(p.Kind), nil, false, r.logger)
	}

	r.logger.Info("Pessoa salva com sucesso no repositório.", map[string]interface{}{"id": id, "tipo": p.Kind})
	return r.table.Get(ctx, q, id)
}

// Update sobrescreve as colunas de usuario e, para corretores, a comissão.
func (r *PersonRepository) Update(ctx context.Context, q database.Querier, p domain.Person) (domain.Person, error) {
	if err := r.table.UpdateRow(ctx, q, p); err != nil {
		return domain.Person{}, err
	}

	if p.Kind == domain.KindBroker {
		if _, err := q.ExecContext(ctx, updateBrokerSQL, commission(p), p.ID); err != nil {
			return domain.Person{}, crud.Translate(err, brokerTableName, nil, false, r.logger)
		}
	}
	return r.table.Get(ctx, q, p.ID)
}

// Delete remove a pessoa; as linhas de subtipo caem em cascata.
func (r *PersonRepository) Delete(ctx context.Context, q database.Querier, id int64) error {
	return r.table.Delete(ctx, q, id)
}

// FindByEmail busca pelo e-mail dentro do escopo do repositório.
func (r *PersonRepository) FindByEmail(ctx context.Context, q database.Querier, email string) (domain.Person, bool, error) {
	return r.table.Lookup(ctx, q, "usuario.email", email)
}

// FindByCPF busca pelo CPF dentro do escopo do repositório.
func (r *PersonRepository) FindByCPF(ctx context.Context, q database.Querier, cpf string) (domain.Person, bool, error) {
	return r.table.Lookup(ctx, q, "usuario.cpf", cpf)
}

func commission(p domain.Person) float64 {
	if p.Broker == nil {
		return 0
	}
	return p.Broker.CommissionPct
}
