package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db, time.Second, logger.NewNop()), mock
}

func TestStore_Do_CommitsOnSuccess(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tag").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.Do(context.Background(), func(ctx context.Context, q Querier) error {
		_, err := q.ExecContext(ctx, "INSERT INTO tag (nome, tipo) VALUES ($1, $2)", "Piscina", true)
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Do_RollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.Do(context.Background(), func(ctx context.Context, q Querier) error {
		return apperror.ErrTagNotFound
	})

	assert.ErrorIs(t, err, apperror.ErrTagNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Do_RollsBackOnPanic(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = store.Do(context.Background(), func(ctx context.Context, q Querier) error {
			panic("falha no meio da transação")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Do_BeginFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin().WillReturnError(errors.New("conexão recusada"))

	called := false
	err := store.Do(context.Background(), func(ctx context.Context, q Querier) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestStore_Do_CommitFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("commit falhou"))

	err := store.Do(context.Background(), func(ctx context.Context, q Querier) error { return nil })

	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAsViolation(t *testing.T) {
	v, ok := AsViolation(&pq.Error{Code: "23505", Constraint: "usuario_email_key"})
	assert.True(t, ok)
	assert.Equal(t, Violation{Code: CodeUniqueViolation, Constraint: "usuario_email_key"}, v)

	v, ok = AsViolation(fmtWrap(&pq.Error{Code: "23503", Constraint: "imovel_id_endereco_fkey"}))
	assert.True(t, ok)
	assert.Equal(t, CodeForeignKeyViolation, v.Code)

	_, ok = AsViolation(&pq.Error{Code: "42P01"})
	assert.False(t, ok)

	_, ok = AsViolation(errors.New("qualquer"))
	assert.False(t, ok)
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("insert"), err)
}
