package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"

	"github.com/FACorreiaa/realestate-ads/config"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/api/announcement"
	"github.com/FACorreiaa/realestate-ads/internal/api/auth"
	"github.com/FACorreiaa/realestate-ads/internal/api/company"
	"github.com/FACorreiaa/realestate-ads/internal/api/user"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

type staticIdentities map[string]*types.Identity

func (s staticIdentities) FindBySubject(_ context.Context, subject string) (*types.Identity, error) {
	if id, ok := s[subject]; ok {
		return id, nil
	}
	return nil, api.ErrNotFound
}

// RouterSuite drives the assembled router through the real gate with a
// mocked pool behind every repository.
type RouterSuite struct {
	suite.Suite
	db      pgxmock.PgxPoolIface
	tokens  *auth.TokenService
	handler http.Handler
	users   staticIdentities
}

func (s *RouterSuite) SetupTest() {
	db, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.db = db

	cfg := config.Config{JWT: config.JWTConfig{SecretKey: "router-test-secret", AccessTokenTTL: time.Hour}}
	cfg.Security.PublicRoutes = []string{"/ping", "/swagger/*", "/api/v1/auth/login"}
	cfg.Security.AllowedOrigins = []string{"http://localhost:3000"}

	s.tokens, err = auth.NewTokenService(cfg.JWT)
	s.Require().NoError(err)
	s.users = staticIdentities{
		"user@example.com":  {ID: uuid.New(), Subject: "user@example.com", Role: types.RoleUser},
		"admin@example.com": {ID: uuid.New(), Subject: "admin@example.com", Role: types.RoleAdmin},
	}

	logger := slog.Default()
	authRepo := auth.NewPostgresAuthRepo(db, logger)
	announcementRepo := announcement.NewPostgresAnnouncementRepo(db, logger)

	s.handler = SetupRouter(&Config{
		AuthHandler:         auth.NewAuthHandler(auth.NewAuthService(authRepo, s.tokens, 0, logger), "", logger),
		AnnouncementHandler: announcement.NewAnnouncementHandler(announcement.NewAnnouncementService(announcementRepo, nil, nil, logger), logger),
		CompanyHandler:      company.NewCompanyHandler(company.NewCompanyService(company.NewPostgresCompanyRepo(db, logger), logger), logger),
		UserHandler:         user.NewHandlerImpl(user.NewUserService(user.NewPostgresUserRepo(db, logger), logger), logger),
		Gate:                auth.NewGate(cfg, s.tokens, s.users, logger),
		AllowedOrigins:      cfg.Security.AllowedOrigins,
		Logger:              logger,
	})
}

func (s *RouterSuite) TearDownTest() {
	s.NoError(s.db.ExpectationsWereMet())
	s.db.Close()
}

func (s *RouterSuite) do(method, path, subject string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if subject != "" {
		id := s.users[subject]
		raw, _, err := s.tokens.Issue(id.ID, id.Subject, id.Role)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+raw)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *RouterSuite) TestPublicPing() {
	rr := s.do(http.MethodGet, "/ping", "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("pong", rr.Body.String())
}

func (s *RouterSuite) TestProtectedWithoutToken() {
	for _, path := range []string{
		"/api/v1/announcements/search",
		"/api/v1/companies/search",
		"/api/v1/users/search",
		"/api/v1/auth/me",
	} {
		rr := s.do(http.MethodGet, path, "")
		s.Equal(http.StatusUnauthorized, rr.Code, path)
		s.Equal(`Bearer realm="realestate-ads"`, rr.Header().Get("WWW-Authenticate"), path)
	}
}

func (s *RouterSuite) TestEncodedTraversalIsNotPublic() {
	for _, path := range []string{
		"/api/v1/users/..%2F..%2F..%2Fswagger",
		"/api/v1/companies/..%2F..%2F..%2Fping",
		"/api/v1/announcements/..%2F..%2F..%2Fswagger%2Findex.html",
	} {
		rr := s.do(http.MethodGet, path, "")
		s.Equal(http.StatusUnauthorized, rr.Code, path)
		s.Equal(`Bearer realm="realestate-ads"`, rr.Header().Get("WWW-Authenticate"), path)
	}
}

func (s *RouterSuite) TestMountedLikeServer() {
	mux := chi.NewRouter()
	mux.Use(middleware.StripSlashes)
	mux.Mount("/", s.handler)

	for path, want := range map[string]int{
		"/ping":                                http.StatusOK,
		"/ping/":                               http.StatusOK,
		"/api/v1/users/search":                 http.StatusUnauthorized,
		"/api/v1/users/..%2F..%2F..%2Fswagger": http.StatusUnauthorized,
	} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		s.Equal(want, rr.Code, path)
	}
}

func (s *RouterSuite) TestDeleteAnnouncementRequiresAdmin() {
	id := uuid.New()

	rr := s.do(http.MethodDelete, "/api/v1/announcements/"+id.String(), "user@example.com")
	s.Equal(http.StatusForbidden, rr.Code)

	s.db.ExpectExec(`UPDATE announcements SET deleted = TRUE WHERE id = \$1 AND deleted = FALSE`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	rr = s.do(http.MethodDelete, "/api/v1/announcements/"+id.String(), "admin@example.com")
	s.Equal(http.StatusNoContent, rr.Code)
	s.NotEmpty(rr.Header().Get(api.AlertHeader))
}

func (s *RouterSuite) TestUnknownSubjectRejected() {
	raw, _, err := s.tokens.Issue(uuid.New(), "ghost@example.com", types.RoleAdmin)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/search", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *RouterSuite) TestCORSPreflightSkipsGate() {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/companies/search", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	s.NotEqual(http.StatusUnauthorized, rr.Code)
	s.Equal("http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}
