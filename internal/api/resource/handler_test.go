package resource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
)

type MockTagService struct{ mock.Mock }

func (m *MockTagService) Get(ctx context.Context, id int64) (domain.Tag, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Tag), args.Error(1)
}

func (m *MockTagService) Page(ctx context.Context, offset, limit int) (domain.Page[domain.Tag], error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).(domain.Page[domain.Tag]), args.Error(1)
}

func (m *MockTagService) Create(ctx context.Context, in domain.TagInput) (domain.Tag, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Tag), args.Error(1)
}

func (m *MockTagService) Update(ctx context.Context, id int64, in domain.TagInput) (domain.Tag, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Tag), args.Error(1)
}

func (m *MockTagService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(svc *MockTagService) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/tags", NewHandler[domain.Tag, domain.TagInput](svc, logger.NewNop()).Routes)
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestHandler_ListDefaults(t *testing.T) {
	svc := new(MockTagService)
	svc.On("Page", mock.Anything, 0, DefaultLimit).Return(domain.NewPage[domain.Tag](0, DefaultLimit, nil), nil)

	rec := do(newRouter(svc), http.MethodGet, "/api/tags", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"limit":10,"offset":0,"data":[]}`, rec.Body.String())
}

func TestHandler_ListClampsLimit(t *testing.T) {
	svc := new(MockTagService)
	svc.On("Page", mock.Anything, 20, MaxLimit).Return(domain.NewPage[domain.Tag](20, MaxLimit, nil), nil)

	rec := do(newRouter(svc), http.MethodGet, "/api/tags?offset=20&limit=5000", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_ListRejectsBadPagination(t *testing.T) {
	svc := new(MockTagService)
	r := newRouter(svc)

	for _, qs := range []string{"offset=-1", "limit=0", "limit=abc"} {
		rec := do(r, http.MethodGet, "/api/tags?"+qs, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, qs)
	}
	svc.AssertNotCalled(t, "Page", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetNotFound(t *testing.T) {
	svc := new(MockTagService)
	svc.On("Get", mock.Anything, int64(9)).Return(domain.Tag{}, apperror.ErrTagNotFound)

	rec := do(newRouter(svc), http.MethodGet, "/api/tags/9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":404,"category":"NOT_FOUND","detail":"TAG_NAO_ENCONTRADA"}`, rec.Body.String())
}

func TestHandler_GetInvalidID(t *testing.T) {
	svc := new(MockTagService)

	rec := do(newRouter(svc), http.MethodGet, "/api/tags/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestHandler_Create(t *testing.T) {
	svc := new(MockTagService)
	svc.On("Create", mock.Anything, domain.TagInput{Name: "Piscina", Category: true}).
		Return(domain.Tag{ID: 1, Name: "Piscina", Category: true}, nil)

	rec := do(newRouter(svc), http.MethodPost, "/api/tags", `{"nome":"Piscina","tipo":true}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"nome":"Piscina","tipo":true}`, rec.Body.String())
}

func TestHandler_Update(t *testing.T) {
	svc := new(MockTagService)
	svc.On("Update", mock.Anything, int64(1), domain.TagInput{Name: "Sauna"}).Return(domain.Tag{ID: 1, Name: "Sauna"}, nil)

	rec := do(newRouter(svc), http.MethodPut, "/api/tags/1", `{"nome":"Sauna","tipo":false}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Delete(t *testing.T) {
	svc := new(MockTagService)
	svc.On("Delete", mock.Anything, int64(1)).Return(nil)
	svc.On("Delete", mock.Anything, int64(2)).Return(apperror.NewConflictError("REGISTRO_EM_USO"))

	rec := do(newRouter(svc), http.MethodDelete, "/api/tags/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(newRouter(svc), http.MethodDelete, "/api/tags/2", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "REGISTRO_EM_USO")
}

func TestRelated(t *testing.T) {
	var gotID int64
	list := func(ctx context.Context, id int64, offset, limit int) (domain.Page[domain.Tag], error) {
		gotID = id
		if id == 404 {
			return domain.Page[domain.Tag]{}, apperror.ErrOwnerNotFound
		}
		return domain.NewPage(offset, limit, []domain.Tag{{ID: 1}}), nil
	}
	r := chi.NewRouter()
	r.Get("/api/proprietarios/{id}/imoveis", Related[domain.Tag](list, logger.NewNop()))

	rec := do(r, http.MethodGet, "/api/proprietarios/7/imoveis?limit=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
	assert.Contains(t, rec.Body.String(), `"limit":5`)

	rec = do(r, http.MethodGet, "/api/proprietarios/404/imoveis", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PROPRIETARIO_NAO_ENCONTRADO")
}
