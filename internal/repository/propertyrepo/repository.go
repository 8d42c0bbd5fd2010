package propertyrepo

import (
	"context"
	"fmt"
	"strings"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/repository/crud"
	"gocorretora/internal/repository/tagrepo"
)

const attachTagSQL = `INSERT INTO imovel_tag (id_imovel, id_tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`

// tagConstraints traduz falhas de gravação em imovel_tag.
var tagConstraints = map[string]error{
	"imovel_tag_id_tag_fkey":    apperror.ErrTagNotFound,
	"imovel_tag_id_imovel_fkey": apperror.ErrPropertyNotFound,
}

// PropertyRepository é o CRUD de imovel mais a associação com tags.
type PropertyRepository struct {
	*crud.Table[domain.Property]
	tagsSQL string
	logger  logger.Logger
}

func NewPropertyRepository(log logger.Logger) *PropertyRepository {
	schema := crud.Schema[domain.Property]{
		Table: "imovel",
		Select: []string{
			"imovel.id", "imovel.id_proprietario", "imovel.id_endereco", "imovel.nome", "imovel.tipo",
			"imovel.valor", "imovel.descricao", "imovel.tamanho", "imovel.quartos", "imovel.vagas",
			"imovel.banheiros", "imovel.disponivel", "imovel.path_foto",
		},
		Columns: []string{
			"id_proprietario", "id_endereco", "nome", "tipo", "valor", "descricao",
			"tamanho", "quartos", "vagas", "banheiros", "disponivel", "path_foto",
		},
		Scan: func(s crud.Scanner) (domain.Property, error) {
			var p domain.Property
			err := s.Scan(&p.ID, &p.OwnerID, &p.AddressID, &p.Name, &p.Type,
				&p.Price, &p.Description, &p.Size, &p.Rooms, &p.ParkingSpots,
				&p.Bathrooms, &p.Available, &p.PhotoPath)
			return p, err
		},
		Values: func(p domain.Property) []any {
			return []any{p.OwnerID, p.AddressID, p.Name, p.Type, p.Price, p.Description,
				p.Size, p.Rooms, p.ParkingSpots, p.Bathrooms, p.Available, p.PhotoPath}
		},
		NotFound: apperror.ErrPropertyNotFound,
		Constraints: map[string]error{
			"imovel_id_endereco_key":      apperror.ErrAddressAlreadyTaken,
			"imovel_id_proprietario_fkey": apperror.ErrOwnerNotFound,
			"imovel_id_endereco_fkey":     apperror.ErrAddressNotFound,
		},
	}

	tagsSQL := fmt.Sprintf(
		"SELECT %s FROM tag JOIN imovel_tag ON imovel_tag.id_tag = tag.id WHERE imovel_tag.id_imovel = $1 ORDER BY tag.id",
		strings.Join(tagrepo.Columns, ", "))

	return &PropertyRepository{
		Table:   crud.New(schema, log),
		tagsSQL: tagsSQL,
		logger:  log,
	}
}

// FindByAddress busca o imóvel que ocupa o endereço, se houver.
func (r *PropertyRepository) FindByAddress(ctx context.Context, q database.Querier, addressID int64) (domain.Property, bool, error) {
	return r.Lookup(ctx, q, "imovel.id_endereco", addressID)
}

// ByOwner lista os imóveis de um proprietário.
func (r *PropertyRepository) ByOwner(ctx context.Context, q database.Querier, ownerID int64, offset, limit int) ([]domain.Property, error) {
	return r.Filter(ctx, q, "imovel.id_proprietario", ownerID, offset, limit)
}

// AttachTags associa as tags ao imóvel. Associações já existentes são ignoradas.
func (r *PropertyRepository) AttachTags(ctx context.Context, q database.Querier, propertyID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := q.ExecContext(ctx, attachTagSQL, propertyID, tagID); err != nil {
			return crud.Translate(err, "imovel_tag", tagConstraints, false, r.logger)
		}
	}
	r.logger.Debug("Tags associadas ao imóvel.", map[string]interface{}{"id_imovel": propertyID, "tags": len(tagIDs)})
	return nil
}

// Tags lista as tags associadas ao imóvel, ordenadas por id.
func (r *PropertyRepository) Tags(ctx context.Context, q database.Querier, propertyID int64) ([]domain.Tag, error) {
	rows, err := q.QueryContext(ctx, r.tagsSQL, propertyID)
	if err != nil {
		r.logger.Error("Falha ao listar tags do imóvel.", err)
		return nil, apperror.NewDBError("falha ao listar tags do imóvel", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := tagrepo.Scan(rows)
		if err != nil {
			r.logger.Error("Falha ao ler tag do imóvel.", err)
			return nil, apperror.NewDBError("falha ao ler tag do imóvel", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar tags do imóvel", err)
	}
	return tags, nil
}
