// Package databasetest oferece uma UnitOfWork em memória para os testes de serviço.
package databasetest

import (
	"context"

	"gocorretora/internal/pkg/database"
)

// UnitOfWork executa fn diretamente, sem banco, e contabiliza o desfecho.
// Os repositórios dos testes são mocks, então o Querier entregue é nil.
type UnitOfWork struct {
	Commits   int
	Rollbacks int
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, q database.Querier) error) error {
	if err := fn(ctx, nil); err != nil {
		u.Rollbacks++
		return err
	}
	u.Commits++
	return nil
}
