package crudservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/database/databasetest"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/service/crudservice"
)

// MockTagRepository é uma implementação mock de crudservice.Repository[domain.Tag]
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Get(ctx context.Context, q database.Querier, id int64) (domain.Tag, error) {
	args := m.Called(ctx, q, id)
	return args.Get(0).(domain.Tag), args.Error(1)
}

func (m *MockTagRepository) Page(ctx context.Context, q database.Querier, offset, limit int) ([]domain.Tag, error) {
	args := m.Called(ctx, q, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) Insert(ctx context.Context, q database.Querier, row domain.Tag) (domain.Tag, error) {
	args := m.Called(ctx, q, row)
	return args.Get(0).(domain.Tag), args.Error(1)
}

func (m *MockTagRepository) Update(ctx context.Context, q database.Querier, row domain.Tag) (domain.Tag, error) {
	args := m.Called(ctx, q, row)
	return args.Get(0).(domain.Tag), args.Error(1)
}

func (m *MockTagRepository) Delete(ctx context.Context, q database.Querier, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func buildTag(id int64, in domain.TagInput) (domain.Tag, error) {
	if in.Name == "" {
		return domain.Tag{}, apperror.NewValidationError("nome é obrigatório")
	}
	return domain.Tag{ID: id, Name: in.Name, Category: in.Category}, nil
}

func newService(repo *MockTagRepository) (*crudservice.Service[domain.Tag, domain.TagInput], *databasetest.UnitOfWork) {
	uow := &databasetest.UnitOfWork{}
	return crudservice.NewService[domain.Tag, domain.TagInput]("tag", uow, repo, buildTag, logger.NewNop()), uow
}

func TestService_Create_Success(t *testing.T) {
	repo := new(MockTagRepository)
	svc, uow := newService(repo)

	repo.On("Insert", mock.Anything, mock.Anything, domain.Tag{Name: "Piscina", Category: true}).
		Return(domain.Tag{ID: 1, Name: "Piscina", Category: true}, nil)

	tag, err := svc.Create(context.Background(), domain.TagInput{Name: "Piscina", Category: true})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), tag.ID)
	assert.Equal(t, 1, uow.Commits)
	repo.AssertExpectations(t)
}

func TestService_Create_ValidationFailsBeforeUnitOfWork(t *testing.T) {
	repo := new(MockTagRepository)
	svc, uow := newService(repo)

	_, err := svc.Create(context.Background(), domain.TagInput{})

	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Zero(t, uow.Commits+uow.Rollbacks)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Get_NotFound(t *testing.T) {
	repo := new(MockTagRepository)
	svc, uow := newService(repo)

	repo.On("Get", mock.Anything, mock.Anything, int64(9)).Return(domain.Tag{}, apperror.ErrTagNotFound)

	_, err := svc.Get(context.Background(), 9)

	assert.ErrorIs(t, err, apperror.ErrTagNotFound)
	assert.Equal(t, 1, uow.Rollbacks)
}

func TestService_Page_EmptyIsNotNull(t *testing.T) {
	repo := new(MockTagRepository)
	svc, _ := newService(repo)

	repo.On("Page", mock.Anything, mock.Anything, 100, 10).Return(nil, nil)

	page, err := svc.Page(context.Background(), 100, 10)

	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 100, page.Offset)
	assert.Equal(t, 10, page.Limit)
}

func TestService_Update_MissingIDIsNotFound(t *testing.T) {
	repo := new(MockTagRepository)
	svc, _ := newService(repo)

	repo.On("Get", mock.Anything, mock.Anything, int64(3)).Return(domain.Tag{}, apperror.ErrTagNotFound)

	_, err := svc.Update(context.Background(), 3, domain.TagInput{Name: "Novo"})

	assert.ErrorIs(t, err, apperror.ErrTagNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_OverwritesRow(t *testing.T) {
	repo := new(MockTagRepository)
	svc, _ := newService(repo)

	repo.On("Get", mock.Anything, mock.Anything, int64(3)).Return(domain.Tag{ID: 3, Name: "Antigo"}, nil)
	repo.On("Update", mock.Anything, mock.Anything, domain.Tag{ID: 3, Name: "Novo"}).Return(domain.Tag{ID: 3, Name: "Novo"}, nil)

	tag, err := svc.Update(context.Background(), 3, domain.TagInput{Name: "Novo"})

	assert.NoError(t, err)
	assert.Equal(t, "Novo", tag.Name)
	repo.AssertExpectations(t)
}

func TestService_Delete(t *testing.T) {
	repo := new(MockTagRepository)
	svc, uow := newService(repo)

	repo.On("Delete", mock.Anything, mock.Anything, int64(1)).Return(nil)
	repo.On("Delete", mock.Anything, mock.Anything, int64(2)).Return(apperror.ErrTagNotFound)

	assert.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 2), apperror.ErrTagNotFound)
	assert.Equal(t, 1, uow.Commits)
	assert.Equal(t, 1, uow.Rollbacks)
}

func TestService_HydrateRunsOnReads(t *testing.T) {
	repo := new(MockTagRepository)
	svc, _ := newService(repo)
	svc.WithHydrate(func(ctx context.Context, q database.Querier, row *domain.Tag) error {
		row.Name += " (hidratada)"
		return nil
	})

	repo.On("Get", mock.Anything, mock.Anything, int64(1)).Return(domain.Tag{ID: 1, Name: "Piscina"}, nil)

	tag, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Piscina (hidratada)", tag.Name)
}

func TestService_HydrateFailureAborts(t *testing.T) {
	repo := new(MockTagRepository)
	svc, uow := newService(repo)
	boom := errors.New("falha ao hidratar")
	svc.WithHydrate(func(ctx context.Context, q database.Querier, row *domain.Tag) error { return boom })

	repo.On("Page", mock.Anything, mock.Anything, 0, 10).Return([]domain.Tag{{ID: 1}}, nil)

	_, err := svc.Page(context.Background(), 0, 10)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, uow.Rollbacks)
}
