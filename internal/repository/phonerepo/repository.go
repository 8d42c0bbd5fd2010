package phonerepo

import (
	"context"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/repository/crud"
)

// PhoneRepository é o CRUD da tabela telefone.
type PhoneRepository struct {
	*crud.Table[domain.Phone]
}

func NewPhoneRepository(log logger.Logger) *PhoneRepository {
	return &PhoneRepository{Table: crud.New(crud.Schema[domain.Phone]{
		Table:   "telefone",
		Select:  []string{"telefone.id", "telefone.id_usuario", "telefone.numero", "telefone.tipo"},
		Columns: []string{"id_usuario", "numero", "tipo"},
		Scan: func(s crud.Scanner) (domain.Phone, error) {
			var p domain.Phone
			err := s.Scan(&p.ID, &p.UserID, &p.Number, &p.Type)
			return p, err
		},
		Values:   func(p domain.Phone) []any { return []any{p.UserID, p.Number, p.Type} },
		NotFound: apperror.ErrPhoneNotFound,
		Constraints: map[string]error{
			"telefone_id_usuario_fkey": apperror.ErrUserNotFound,
		},
	}, log)}
}

// ByUser lista os telefones de um usuário.
func (r *PhoneRepository) ByUser(ctx context.Context, q database.Querier, userID int64, offset, limit int) ([]domain.Phone, error) {
	return r.Filter(ctx, q, "telefone.id_usuario", userID, offset, limit)
}
