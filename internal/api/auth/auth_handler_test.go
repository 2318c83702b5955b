package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/realestate-ads/app/middleware"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req types.RegisterRequest) (*types.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, token string) (*types.TokenResponse, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, subject string) (*types.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, "", slog.Default())
		svc.On("Login", mock.Anything, "ana@example.com", "password123").
			Return(&types.TokenResponse{Token: "signed", ExpiresAt: 42}, nil).Once()

		rr := post(h.Login, `{"email":"ana@example.com","password":"password123"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Bearer signed", rr.Header().Get("Authorization"))

		var resp types.TokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "signed", resp.Token)
		svc.AssertExpectations(t)
	})

	t.Run("ConfiguredHeader", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, "X-Auth-Token", slog.Default())
		svc.On("Login", mock.Anything, "ana@example.com", "password123").
			Return(&types.TokenResponse{Token: "signed", ExpiresAt: 42}, nil).Once()

		rr := post(h.Login, `{"email":"ana@example.com","password":"password123"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Bearer signed", rr.Header().Get("X-Auth-Token"))
		assert.Empty(t, rr.Header().Get("Authorization"))
	})

	t.Run("BadCredentials", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, "", slog.Default())
		svc.On("Login", mock.Anything, "ana@example.com", "nope").Return(nil, api.ErrUnauthenticated).Once()

		rr := post(h.Login, `{"email":"ana@example.com","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, rr.Header().Get("Authorization"))
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, "", slog.Default())
		for _, body := range []string{`{"email":"ana@example.com"}`, `{`, `{"email":"a","password":"b","extra":1}`} {
			rr := post(h.Login, body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, "", slog.Default())
		svc.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		rr := post(h.Login, `{"email":"ana@example.com","password":"password123"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "db down")
	})
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, "", slog.Default())
	req := types.RegisterRequest{Email: "new@example.com", Password: "Str0ngP@ss!", FirstName: "Nuno", LastName: "Costa"}
	created := &types.User{ID: uuid.New(), Email: req.Email, Role: types.RoleUser}
	svc.On("Register", mock.Anything, req).Return(created, nil).Once()

	body, err := json.Marshal(req)
	require.NoError(t, err)
	rr := post(h.Register, string(body))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, created.ID.String(), rr.Header().Get(api.ParamsHeader))

	dup := req
	dup.Email = "dup@example.com"
	svc.On("Register", mock.Anything, dup).Return(nil, api.ErrConflict).Once()
	body, err = json.Marshal(dup)
	require.NoError(t, err)
	rr = post(h.Register, string(body))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(api.ErrorHeader))
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, "", slog.Default())
	svc.On("RefreshToken", mock.Anything, "old").Return(&types.TokenResponse{Token: "new"}, nil).Once()
	svc.On("RefreshToken", mock.Anything, "stale").Return(nil, api.ErrTokenExpired).Once()

	rr := post(h.RefreshToken, `{"token":"old"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer new", rr.Header().Get("Authorization"))

	rr = post(h.RefreshToken, `{"token":"stale"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, unauthorizedMessage, resp["error"])
}

func TestAuthHandler_Me(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, "", slog.Default())
	user := &types.User{ID: uuid.New(), Email: "ana@example.com"}
	svc.On("Me", mock.Anything, "ana@example.com").Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rr := httptest.NewRecorder()
	h.Me(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = req.WithContext(appMiddleware.WithPrincipal(req.Context(), appMiddleware.Principal{
		UserID: user.ID, Subject: user.Email, Role: types.RoleUser,
	}))
	rr = httptest.NewRecorder()
	h.Me(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
