package tagrepo

import (
	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/repository/crud"
)

// Columns é a lista de leitura de tag, reutilizada pela junção imovel_tag.
var Columns = []string{"tag.id", "tag.nome", "tag.tipo"}

// Scan lê uma tag na ordem de Columns.
func Scan(s crud.Scanner) (domain.Tag, error) {
	var t domain.Tag
	err := s.Scan(&t.ID, &t.Name, &t.Category)
	return t, err
}

// TagRepository é o CRUD genérico da tabela tag.
type TagRepository struct {
	*crud.Table[domain.Tag]
}

func NewTagRepository(log logger.Logger) *TagRepository {
	return &TagRepository{Table: crud.New(crud.Schema[domain.Tag]{
		Table:    "tag",
		Select:   Columns,
		Columns:  []string{"nome", "tipo"},
		Scan:     Scan,
		Values:   func(t domain.Tag) []any { return []any{t.Name, t.Category} },
		NotFound: apperror.ErrTagNotFound,
	}, log)}
}
