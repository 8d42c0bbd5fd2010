// Package resource expõe qualquer serviço de cinco operações como um recurso REST.
package resource

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gocorretora/internal/api/respond"
	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
)

// Limites de paginação.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Service define o contrato que o Handler espera da camada de Serviço.
type Service[T domain.Entity, In any] interface {
	Get(ctx context.Context, id int64) (T, error)
	Page(ctx context.Context, offset, limit int) (domain.Page[T], error)
	Create(ctx context.Context, in In) (T, error)
	Update(ctx context.Context, id int64, in In) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Handler agrupa os handlers CRUD de uma entidade.
type Handler[T domain.Entity, In any] struct {
	Service Service[T, In]
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler[T domain.Entity, In any](svc Service[T, In], log logger.Logger) *Handler[T, In] {
	return &Handler[T, In]{Service: svc, Logger: log}
}

// Routes registra GET/POST na raiz e GET/PUT/DELETE em /{id}.
func (h *Handler[T, In]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List lida com GET /api/<recurso>?offset=&limit=.
func (h *Handler[T, In]) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := ParsePage(r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	page, err := h.Service.Page(r.Context(), offset, limit)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, page)
}

// Get lida com GET /api/<recurso>/{id}.
func (h *Handler[T, In]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	row, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, row)
}

// Create lida com POST /api/<recurso>.
func (h *Handler[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	row, err := h.Service.Create(r.Context(), in)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusCreated, row)
}

// Update lida com PUT /api/<recurso>/{id}.
func (h *Handler[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	var in In
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	row, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, row)
}

// Delete lida com DELETE /api/<recurso>/{id}. Sucesso responde 204 sem corpo.
func (h *Handler[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFunc lista as entidades relacionadas a um id (e.g., imóveis de um proprietário).
type ListFunc[T any] func(ctx context.Context, id int64, offset, limit int) (domain.Page[T], error)

// Related cria o handler GET /api/<recurso>/{id}/<relação>.
func Related[T any](list ListFunc[T], log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(r)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		offset, limit, err := ParsePage(r)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		page, err := list(r.Context(), id, offset, limit)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, log, http.StatusOK, page)
	}
}

// ParseID lê o parâmetro de rota {id}.
func ParseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("O ID deve ser um inteiro positivo.")
	}
	return id, nil
}

// ParsePage lê offset e limit da query string. limit acima de MaxLimit é reduzido a MaxLimit.
func ParsePage(r *http.Request) (offset, limit int, err error) {
	offset, limit = 0, DefaultLimit
	q := r.URL.Query()

	if raw := q.Get("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil || offset < 0 {
			return 0, 0, apperror.NewValidationError("offset deve ser um inteiro não negativo.")
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 1 {
			return 0, 0, apperror.NewValidationError("limit deve ser um inteiro positivo.")
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit, nil
}
