package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gocorretora/internal/domain"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/pkg/token"
)

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(tokenString string) (*token.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Claims), args.Error(1)
}

func newProtected(t *testing.T, validator TokenValidator) (http.Handler, *bool) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		claims, ok := GetUserClaimsFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(claims.Subject))
	})
	return NewAuthMiddleware(validator, logger.NewNop())(next), &reached
}

func assertUnauthorized(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusUnauthorized, body.Code)
	assert.Equal(t, DetailInvalidToken, body.Detail)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", "abc.def.ghi").Return(&token.Claims{UserID: "ana@exemplo.com"}, nil)
	h, reached := newProtected(t, validator)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, *reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@exemplo.com", rec.Body.String())
	validator.AssertExpectations(t)
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "abc.def.ghi"} {
		validator := new(MockTokenValidator)
		h, reached := newProtected(t, validator)

		req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.False(t, *reached, "header %q", header)
		assertUnauthorized(t, rec)
		validator.AssertNotCalled(t, "ValidateToken", mock.Anything)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", "expirado").Return(nil, errors.Join(token.ErrInvalidToken, errors.New("token is expired")))
	h, reached := newProtected(t, validator)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.Header.Set("Authorization", "Bearer expirado")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, *reached)
	assertUnauthorized(t, rec)
}
