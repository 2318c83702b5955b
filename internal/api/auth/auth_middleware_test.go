package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/realestate-ads/app/middleware"
	"github.com/FACorreiaa/realestate-ads/config"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

type gateFixture struct {
	clock    *testClock
	tokens   *TokenService
	repo     *MockAuthRepo
	gate     *Gate
	reached  bool
	seen     appMiddleware.Principal
	handler  http.Handler
	identity *types.Identity
}

func newGateFixture(t *testing.T, mutate func(*config.Config)) *gateFixture {
	t.Helper()
	cfg := config.Config{JWT: testJWTConfig()}
	cfg.Security.PublicRoutes = []string{
		"/ping",
		"/swagger/*",
		"/api/v1/auth/login",
		"/api/v1/auth/reset-password/*",
	}
	if mutate != nil {
		mutate(&cfg)
	}

	f := &gateFixture{clock: newTestClock(), repo: new(MockAuthRepo)}
	f.tokens = newTestTokens(t, f.clock)
	f.gate = NewGate(cfg, f.tokens, f.repo, slog.Default())
	f.identity = &types.Identity{ID: uuid.New(), Subject: "ana@example.com", Role: types.RoleAdvertiser}
	f.handler = f.gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.reached = true
		f.seen, _ = appMiddleware.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return f
}

func (f *gateFixture) issue(t *testing.T) string {
	t.Helper()
	raw, _, err := f.tokens.Issue(f.identity.ID, f.identity.Subject, f.identity.Role)
	require.NoError(t, err)
	return raw
}

func (f *gateFixture) do(path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func assertUnauthorized(t *testing.T, f *gateFixture, rr *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, f.reached, "protected handler must not run")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, unauthorizedMessage, body["error"])
}

func TestGate_NoTokenOnProtectedRoute(t *testing.T) {
	f := newGateFixture(t, nil)
	rr := f.do("/api/v1/announcements/search", "")
	assertUnauthorized(t, f, rr)
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
}

func TestGate_NoTokenOnPublicRoute(t *testing.T) {
	for _, path := range []string{"/ping", "/swagger/index.html", "/api/v1/auth/login", "/api/v1/auth/reset-password/finish"} {
		f := newGateFixture(t, nil)
		rr := f.do(path, "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.True(t, f.reached, path)
	}
}

func TestGate_IsPublic(t *testing.T) {
	f := newGateFixture(t, nil)
	assert.True(t, f.gate.IsPublic("/swagger"))
	assert.True(t, f.gate.IsPublic("/swagger/doc.json"))
	assert.False(t, f.gate.IsPublic("/swaggerx"))
	assert.False(t, f.gate.IsPublic("/api/v1/auth/me"))
	assert.False(t, f.gate.IsPublic("/api/v1/auth/login/../me"))
	assert.False(t, f.gate.IsPublic("/pingpong"))
	assert.False(t, f.gate.IsPublic("/api/v1/users/..%2F..%2F..%2Fswagger"))
	assert.False(t, f.gate.IsPublic("/ping/"))
	assert.False(t, f.gate.IsPublic("ping"))
}

func TestGate_EncodedTraversalIsNotPublic(t *testing.T) {
	f := newGateFixture(t, nil)
	rr := f.do("/api/v1/users/..%2F..%2F..%2Fswagger", "")
	assertUnauthorized(t, f, rr)
}

func TestGate_ValidToken(t *testing.T) {
	f := newGateFixture(t, nil)
	f.repo.On("FindBySubject", mock.Anything, "ana@example.com").Return(f.identity, nil).Once()

	rr := f.do("/api/v1/announcements/search", "Bearer "+f.issue(t))
	assert.Equal(t, http.StatusOK, rr.Code)
	require.True(t, f.reached)
	assert.Equal(t, f.identity.ID, f.seen.UserID)
	assert.Equal(t, "ana@example.com", f.seen.Subject)
	assert.Equal(t, types.RoleAdvertiser, f.seen.Role)
	f.repo.AssertExpectations(t)
}

func TestGate_RoleComesFromStore(t *testing.T) {
	f := newGateFixture(t, nil)
	raw := f.issue(t)
	demoted := *f.identity
	demoted.Role = types.RoleUser
	f.repo.On("FindBySubject", mock.Anything, "ana@example.com").Return(&demoted, nil).Once()

	rr := f.do("/api/v1/announcements/search", "Bearer "+raw)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, types.RoleUser, f.seen.Role)
}

func TestGate_MalformedToken(t *testing.T) {
	f := newGateFixture(t, nil)
	for _, h := range []string{"Bearer garbage", "Bearer a.b.c", "Basic dXNlcjpwYXNz"} {
		f.reached = false
		assertUnauthorized(t, f, f.do("/api/v1/users/search", h))
	}
	f.repo.AssertNotCalled(t, "FindBySubject", mock.Anything, mock.Anything)
}

func TestGate_TamperedToken(t *testing.T) {
	f := newGateFixture(t, nil)
	raw := f.issue(t)
	last := raw[len(raw)-2]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := raw[:len(raw)-2] + string(replacement) + raw[len(raw)-1:]

	assertUnauthorized(t, f, f.do("/api/v1/users/search", "Bearer "+tampered))
}

func TestGate_ExpiredTokenRejectedByDefault(t *testing.T) {
	f := newGateFixture(t, nil)
	raw := f.issue(t)
	f.clock.Advance(16 * time.Minute)

	rr := f.do("/api/v1/users/search", "Bearer "+raw)
	assertUnauthorized(t, f, rr)
	assert.Equal(t, "", rr.Header().Get("Authorization"))
	f.repo.AssertNotCalled(t, "FindBySubject", mock.Anything, mock.Anything)
}

func TestGate_SlidingRefresh(t *testing.T) {
	f := newGateFixture(t, func(c *config.Config) {
		c.JWT.SlidingRefresh = true
		c.JWT.RefreshWindow = 10 * time.Minute
	})
	f.repo.On("FindBySubject", mock.Anything, "ana@example.com").Return(f.identity, nil)
	raw := f.issue(t)

	f.clock.Advance(20 * time.Minute)
	rr := f.do("/api/v1/users/search", "Bearer "+raw)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, f.reached)

	refreshed := strings.TrimPrefix(rr.Header().Get("Authorization"), "Bearer ")
	require.NotEmpty(t, refreshed)
	claims, err := f.tokens.Validate(refreshed)
	require.NoError(t, err)
	assert.False(t, f.tokens.Expired(claims))
	assert.Equal(t, "ana@example.com", claims.Subject)

	// Past the window the token is terminal.
	f.reached = false
	f.clock.Advance(10 * time.Minute)
	assertUnauthorized(t, f, f.do("/api/v1/users/search", "Bearer "+raw))
}

func TestGate_IdentityChecks(t *testing.T) {
	tests := []struct {
		name     string
		identity func(*types.Identity) *types.Identity
		err      error
	}{
		{"unknown subject", nil, api.ErrNotFound},
		{"deleted user", func(i *types.Identity) *types.Identity {
			c := *i
			c.Deleted = true
			return &c
		}, nil},
		{"subject mismatch", func(i *types.Identity) *types.Identity {
			c := *i
			c.Subject = "someone-else@example.com"
			return &c
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(t, nil)
			if tt.identity != nil {
				f.repo.On("FindBySubject", mock.Anything, "ana@example.com").Return(tt.identity(f.identity), nil).Once()
			} else {
				f.repo.On("FindBySubject", mock.Anything, "ana@example.com").Return(nil, tt.err).Once()
			}
			assertUnauthorized(t, f, f.do("/api/v1/users/search", "Bearer "+f.issue(t)))
		})
	}
}

func TestGate_StoreFailureIsServerError(t *testing.T) {
	f := newGateFixture(t, nil)
	f.repo.On("FindBySubject", mock.Anything, "ana@example.com").Return(nil, errors.New("pool closed")).Once()

	rr := f.do("/api/v1/users/search", "Bearer "+f.issue(t))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, f.reached)
}

func TestGate_CustomHeaderWithoutBearerPrefix(t *testing.T) {
	f := newGateFixture(t, func(c *config.Config) { c.JWT.Header = "X-Auth-Token" })
	f.repo.On("FindBySubject", mock.Anything, "ana@example.com").Return(f.identity, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/search", nil)
	req.Header.Set("X-Auth-Token", f.issue(t))
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "X-Auth-Token", f.gate.Header())
}
