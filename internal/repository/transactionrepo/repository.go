package transactionrepo

import (
	"context"
	"time"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/repository/crud"
)

// TransactionRepository é o CRUD da tabela transacao.
type TransactionRepository struct {
	*crud.Table[domain.Transaction]
}

func NewTransactionRepository(log logger.Logger) *TransactionRepository {
	return &TransactionRepository{Table: crud.New(crud.Schema[domain.Transaction]{
		Table: "transacao",
		Select: []string{
			"transacao.id", "transacao.id_corretor", "transacao.id_imovel", "transacao.data", "transacao.valor_total",
		},
		Columns: []string{"id_corretor", "id_imovel", "data", "valor_total"},
		Scan: func(s crud.Scanner) (domain.Transaction, error) {
			var (
				t    domain.Transaction
				date time.Time
			)
			if err := s.Scan(&t.ID, &t.BrokerID, &t.PropertyID, &date, &t.Total); err != nil {
				return domain.Transaction{}, err
			}
			t.Date = domain.NewDate(date.Year(), date.Month(), date.Day())
			return t, nil
		},
		Values: func(t domain.Transaction) []any {
			return []any{t.BrokerID, t.PropertyID, t.Date.Time, t.Total}
		},
		NotFound: apperror.ErrTransactionNotFound,
		Constraints: map[string]error{
			"transacao_id_corretor_fkey": apperror.ErrBrokerNotFound,
			"transacao_id_imovel_fkey":   apperror.ErrPropertyNotFound,
		},
	}, log)}
}

// ByBroker lista as transações intermediadas por um corretor.
func (r *TransactionRepository) ByBroker(ctx context.Context, q database.Querier, brokerID int64, offset, limit int) ([]domain.Transaction, error) {
	return r.Filter(ctx, q, "transacao.id_corretor", brokerID, offset, limit)
}
