package personrepo

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
)

var personColumns = []string{"id", "nome", "email", "senha", "cpf", "path_foto", "tipo", "percentual_comissao"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPersonRepository_GetLoadsSubtypeByDiscriminator(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPersonRepository(domain.KindUser, logger.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuario LEFT JOIN corretor ON corretor.id = usuario.id WHERE usuario.id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(personColumns).AddRow(1, "Bia", "bia@x.com", "hash", "123", "", "corretor", 5.5))
	mock.ExpectQuery("FROM usuario").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(personColumns).AddRow(2, "Caio", "caio@x.com", "hash", "456", "", "proprietario", nil))

	broker, err := repo.Get(context.Background(), db, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.KindBroker, broker.Kind)
	require.NotNil(t, broker.Broker)
	assert.Equal(t, 5.5, broker.Broker.CommissionPct)

	owner, err := repo.Get(context.Background(), db, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.KindOwner, owner.Kind)
	assert.Nil(t, owner.Broker)
}

func TestPersonRepository_ScopedGetUsesKindError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPersonRepository(domain.KindBroker, logger.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE usuario.id = $1 AND usuario.tipo = 'corretor'")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(personColumns))

	_, err := repo.Get(context.Background(), db, 9)

	assert.ErrorIs(t, err, apperror.ErrBrokerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_InsertBrokerWritesSubtypeRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPersonRepository(domain.KindBroker, logger.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO usuario (nome, email, senha, cpf, path_foto, tipo) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id")).
		WithArgs("Bia", "bia@x.com", "hash", "123", "", "corretor").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta(insertBrokerSQL)).
		WithArgs(int64(10), 3.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM usuario").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(personColumns).AddRow(10, "Bia", "bia@x.com", "hash", "123", "", "corretor", 3.0))

	p, err := repo.Insert(context.Background(), db, domain.Person{
		Name: "Bia", Email: "bia@x.com", PasswordHash: "hash", CPF: "123",
		Kind: domain.KindBroker, Broker: &domain.BrokerProfile{CommissionPct: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_InsertOwnerWritesSubtypeRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPersonRepository(domain.KindOwner, logger.NewNop())

	mock.ExpectQuery("INSERT INTO usuario").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(regexp.QuoteMeta(insertOwnerSQL)).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM usuario").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(personColumns).AddRow(11, "Caio", "c@x.com", "hash", "456", "", "proprietario", nil))

	p, err := repo.Insert(context.Background(), db, domain.Person{Name: "Caio", Kind: domain.KindOwner})

	require.NoError(t, err)
	assert.Equal(t, domain.KindOwner, p.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_UniqueViolationMapsToKindError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPersonRepository(domain.KindOwner, logger.NewNop())

	mock.ExpectQuery("INSERT INTO usuario").WillReturnError(&pq.Error{Code: "23505", Constraint: "usuario_cpf_key"})

	_, err := repo.Insert(context.Background(), db, domain.Person{Kind: domain.KindOwner})

	assert.ErrorIs(t, err, apperror.ErrOwnerAlreadyExists)
}

func TestPersonRepository_UpdateBrokerCommission(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPersonRepository(domain.KindBroker, logger.NewNop())

	mock.ExpectExec("UPDATE usuario SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateBrokerSQL)).WithArgs(7.5, int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM usuario").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(personColumns).AddRow(3, "Bia", "bia@x.com", "hash", "123", "", "corretor", 7.5))

	p, err := repo.Update(context.Background(), db, domain.Person{
		ID: 3, Kind: domain.KindBroker, Broker: &domain.BrokerProfile{CommissionPct: 7.5},
	})

	require.NoError(t, err)
	assert.Equal(t, 7.5, p.Broker.CommissionPct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPersonRepository(domain.KindUser, logger.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE usuario.email = $1 ORDER BY usuario.id LIMIT 1")).
		WithArgs("ninguem@x.com").
		WillReturnRows(sqlmock.NewRows(personColumns))

	_, found, err := repo.FindByEmail(context.Background(), db, "ninguem@x.com")

	require.NoError(t, err)
	assert.False(t, found)
}
