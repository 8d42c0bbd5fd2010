package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
)

// Querier é o subconjunto de *sql.DB / *sql.Tx usado pelos repositórios.
// Toda chamada de repositório recebe o Querier da unidade de trabalho corrente.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UnitOfWork executa fn dentro de uma única transação: tudo é confirmado
// ou nada é.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, q Querier) error) error
}

// Store é a UnitOfWork sobre o pool PostgreSQL.
type Store struct {
	db      *sql.DB
	timeout time.Duration
	logger  logger.Logger
}

// NewStore cria o Store. timeout <= 0 desativa o limite por unidade de trabalho.
func NewStore(db *sql.DB, timeout time.Duration, log logger.Logger) *Store {
	return &Store{db: db, timeout: timeout, logger: log}
}

// Do abre uma transação, entrega-a a fn e faz commit somente se fn retornar nil.
// Em qualquer outra saída (erro de domínio, erro do driver ou panic) a transação é desfeita.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("Falha ao iniciar transação.", err)
		return apperror.NewDBError("falha ao iniciar transação", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error("Falha ao desfazer transação.", rbErr)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		s.logger.Debug("Unidade de trabalho abortada.", map[string]interface{}{"error": err.Error()})
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("Falha ao confirmar transação.", err)
		return apperror.NewDBError("falha ao confirmar transação", err)
	}
	committed = true
	return nil
}
