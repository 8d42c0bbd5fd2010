// Package crud implementa as operações SQL comuns a todas as entidades
// (buscar, paginar, inserir, atualizar, remover) a partir de um Schema.
package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
)

// Detalhes devolvidos para violações de restrição não mapeadas no Schema.
const (
	DetailInUse            = "REGISTRO_EM_USO"
	DetailDuplicated       = "REGISTRO_DUPLICADO"
	DetailInvalidReference = "REFERENCIA_INVALIDA"
)

// Scanner é satisfeito por *sql.Row e *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Schema descreve como uma entidade é lida e gravada.
type Schema[T domain.Entity] struct {
	// Table é a tabela base; sua coluna id é a chave primária.
	Table string
	// Select lista as colunas lidas, já qualificadas, na ordem esperada por Scan.
	Select []string
	// Joins é anexado após "FROM <Table>" (opcional).
	Joins string
	// Scope é um predicado fixo sobre a tabela base, aplicado a toda leitura,
	// atualização e remoção (opcional).
	Scope string
	// Columns são as colunas graváveis, na ordem devolvida por Values.
	Columns []string
	Scan    func(Scanner) (T, error)
	Values  func(T) []any
	// NotFound é devolvido quando a linha não existe (ou está fora do Scope).
	NotFound error
	// Constraints traduz o nome de uma restrição violada para um erro de domínio.
	Constraints map[string]error
}

// Table executa o SQL de uma entidade descrita por Schema.
type Table[T domain.Entity] struct {
	schema Schema[T]
	logger logger.Logger

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// New monta as queries fixas do Schema.
func New[T domain.Entity](schema Schema[T], log logger.Logger) *Table[T] {
	t := &Table[T]{schema: schema, logger: log}

	t.selectSQL = fmt.Sprintf("SELECT %s FROM %s", strings.Join(schema.Select, ", "), schema.Table)
	if schema.Joins != "" {
		t.selectSQL += " " + schema.Joins
	}

	placeholders := make([]string, len(schema.Columns))
	assignments := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	t.insertSQL = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		schema.Table, strings.Join(schema.Columns, ", "), strings.Join(placeholders, ", "))
	t.updateSQL = fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		schema.Table, strings.Join(assignments, ", "), t.where(fmt.Sprintf("%s.id = $%d", schema.Table, len(schema.Columns)+1)))
	t.deleteSQL = fmt.Sprintf("DELETE FROM %s WHERE %s", schema.Table, t.where(schema.Table+".id = $1"))

	return t
}

// where combina o predicado com o Scope do Schema.
func (t *Table[T]) where(pred string) string {
	if t.schema.Scope == "" {
		return pred
	}
	return pred + " AND " + t.schema.Scope
}

// Name retorna o nome da tabela base.
func (t *Table[T]) Name() string { return t.schema.Table }

// Get busca uma linha pelo id.
func (t *Table[T]) Get(ctx context.Context, q database.Querier, id int64) (T, error) {
	query := t.selectSQL + " WHERE " + t.where(t.schema.Table+".id = $1")

	row, err := t.schema.Scan(q.QueryRowContext(ctx, query, id))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			t.logger.Debug("Registro não encontrado.", map[string]interface{}{"table": t.schema.Table, "id": id})
			return zero, t.schema.NotFound
		}
		t.logger.Error(fmt.Sprintf("Falha ao buscar registro em %s.", t.schema.Table), err)
		return zero, apperror.NewDBError("falha ao buscar registro em "+t.schema.Table, err)
	}
	return row, nil
}

// Page lista as linhas ordenadas por id. Offset além do fim resulta em lista vazia.
func (t *Table[T]) Page(ctx context.Context, q database.Querier, offset, limit int) ([]T, error) {
	query := t.selectSQL
	if t.schema.Scope != "" {
		query += " WHERE " + t.schema.Scope
	}
	query += fmt.Sprintf(" ORDER BY %s.id LIMIT $1 OFFSET $2", t.schema.Table)

	return t.list(ctx, q, query, limit, offset)
}

// Lookup busca a primeira linha (menor id) cuja coluna é igual a value.
// A ausência é reportada por found == false, nunca como erro.
func (t *Table[T]) Lookup(ctx context.Context, q database.Querier, column string, value any) (row T, found bool, err error) {
	query := fmt.Sprintf("%s WHERE %s ORDER BY %s.id LIMIT 1", t.selectSQL, t.where(column+" = $1"), t.schema.Table)

	row, err = t.schema.Scan(q.QueryRowContext(ctx, query, value))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		t.logger.Error(fmt.Sprintf("Falha na busca por %s em %s.", column, t.schema.Table), err)
		return zero, false, apperror.NewDBError("falha na busca em "+t.schema.Table, err)
	}
	return row, true, nil
}

// Filter lista, ordenadas por id, as linhas cuja coluna é igual a value.
func (t *Table[T]) Filter(ctx context.Context, q database.Querier, column string, value any, offset, limit int) ([]T, error) {
	query := fmt.Sprintf("%s WHERE %s ORDER BY %s.id LIMIT $2 OFFSET $3", t.selectSQL, t.where(column+" = $1"), t.schema.Table)

	return t.list(ctx, q, query, value, limit, offset)
}

func (t *Table[T]) list(ctx context.Context, q database.Querier, query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		t.logger.Error(fmt.Sprintf("Falha ao listar registros de %s.", t.schema.Table), err)
		return nil, apperror.NewDBError("falha ao listar "+t.schema.Table, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		row, err := t.schema.Scan(rows)
		if err != nil {
			t.logger.Error(fmt.Sprintf("Falha ao ler registro de %s.", t.schema.Table), err)
			return nil, apperror.NewDBError("falha ao ler "+t.schema.Table, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		t.logger.Error(fmt.Sprintf("Erro durante a iteração de %s.", t.schema.Table), err)
		return nil, apperror.NewDBError("falha ao iterar "+t.schema.Table, err)
	}
	return out, nil
}

// InsertID grava a linha e devolve o id atribuído pelo banco.
func (t *Table[T]) InsertID(ctx context.Context, q database.Querier, row T) (int64, error) {
	var id int64
	if err := q.QueryRowContext(ctx, t.insertSQL, t.schema.Values(row)...).Scan(&id); err != nil {
		return 0, t.translate(err, false)
	}
	t.logger.Debug("Registro inserido.", map[string]interface{}{"table": t.schema.Table, "id": id})
	return id, nil
}

// Insert grava a linha e a relê, refletindo os valores padrão do banco.
func (t *Table[T]) Insert(ctx context.Context, q database.Querier, row T) (T, error) {
	id, err := t.InsertID(ctx, q, row)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.Get(ctx, q, id)
}

// UpdateRow sobrescreve todas as colunas graváveis da linha row.EntityID().
func (t *Table[T]) UpdateRow(ctx context.Context, q database.Querier, row T) error {
	args := append(t.schema.Values(row), row.EntityID())

	res, err := q.ExecContext(ctx, t.updateSQL, args...)
	if err != nil {
		return t.translate(err, false)
	}
	return t.expectAffected(res, row.EntityID())
}

// Update sobrescreve a linha e a relê.
func (t *Table[T]) Update(ctx context.Context, q database.Querier, row T) (T, error) {
	if err := t.UpdateRow(ctx, q, row); err != nil {
		var zero T
		return zero, err
	}
	return t.Get(ctx, q, row.EntityID())
}

// Delete remove a linha. Linhas ainda referenciadas resultam em conflito.
func (t *Table[T]) Delete(ctx context.Context, q database.Querier, id int64) error {
	res, err := q.ExecContext(ctx, t.deleteSQL, id)
	if err != nil {
		return t.translate(err, true)
	}
	if err := t.expectAffected(res, id); err != nil {
		return err
	}
	t.logger.Debug("Registro removido.", map[string]interface{}{"table": t.schema.Table, "id": id})
	return nil
}

func (t *Table[T]) expectAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		t.logger.Error("Falha ao obter linhas afetadas.", err)
		return apperror.NewDBError("falha ao obter linhas afetadas em "+t.schema.Table, err)
	}
	if n == 0 {
		t.logger.Debug("Nenhuma linha afetada.", map[string]interface{}{"table": t.schema.Table, "id": id})
		return t.schema.NotFound
	}
	return nil
}

// translate converte o erro do driver. Restrições mapeadas no Schema viram o erro
// de domínio correspondente; o banco é a autoridade final sobre unicidade e referências.
func (t *Table[T]) translate(err error, deleting bool) error {
	return Translate(err, t.schema.Table, t.schema.Constraints, deleting, t.logger)
}

// Translate é a tradução de erros de escrita compartilhada com os repositórios
// que executam SQL próprio.
func Translate(err error, table string, constraints map[string]error, deleting bool, log logger.Logger) error {
	v, ok := database.AsViolation(err)
	if !ok {
		log.Error(fmt.Sprintf("Falha ao gravar em %s.", table), err)
		return apperror.NewDBError("falha ao gravar em "+table, err)
	}

	log.Debug("Violação de restrição.", map[string]interface{}{"table": table, "code": v.Code, "constraint": v.Constraint})
	if mapped, ok := constraints[v.Constraint]; ok {
		return mapped
	}
	switch {
	case v.Code == database.CodeForeignKeyViolation && deleting:
		return apperror.NewConflictError(DetailInUse)
	case v.Code == database.CodeForeignKeyViolation:
		return apperror.NewConflictError(DetailInvalidReference)
	default:
		return apperror.NewConflictError(DetailDuplicated)
	}
}
