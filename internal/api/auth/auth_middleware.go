package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	appMiddleware "github.com/FACorreiaa/realestate-ads/app/middleware"
	"github.com/FACorreiaa/realestate-ads/config"
	"github.com/FACorreiaa/realestate-ads/internal/api"
)

const unauthorizedMessage = "Full authentication is required to access this resource"

// Rejection reasons. They are logged and counted, never sent to the client.
const (
	reasonMissingToken    = "missing_token"
	reasonTokenInvalid    = "token_invalid"
	reasonTokenExpired    = "token_expired"
	reasonRefreshFailed   = "refresh_failed"
	reasonUnknownSubject  = "unknown_subject"
	reasonUserDeleted     = "user_deleted"
	reasonSubjectMismatch = "subject_mismatch"
)

// Gate authenticates every request before it reaches a protected handler.
// It is stateless apart from its immutable configuration.
type Gate struct {
	logger        *slog.Logger
	tokens        *TokenService
	identities    IdentityStore
	header        string
	publicRoutes  []string
	slidingWindow time.Duration
	sliding       bool
}

func NewGate(cfg config.Config, tokens *TokenService, identities IdentityStore, logger *slog.Logger) *Gate {
	header := cfg.JWT.Header
	if header == "" {
		header = "Authorization"
	}
	return &Gate{
		logger:        logger.With(slog.String("middleware", "Authenticate")),
		tokens:        tokens,
		identities:    identities,
		header:        header,
		publicRoutes:  cfg.Security.PublicRoutes,
		sliding:       cfg.JWT.SlidingRefresh,
		slidingWindow: cfg.JWT.RefreshWindow,
	}
}

// Header is the request header the Gate reads tokens from.
func (g *Gate) Header() string {
	return g.header
}

// IsPublic reports whether p matches one of the configured public route
// patterns. Patterns use path.Match syntax; a trailing "/*" also matches
// every deeper path. Paths that are not already clean never match.
func (g *Gate) IsPublic(p string) bool {
	if !strings.HasPrefix(p, "/") || path.Clean(p) != p {
		return false
	}
	for _, pattern := range g.publicRoutes {
		if ok, _ := path.Match(pattern, p); ok {
			return true
		}
		if prefix, found := strings.CutSuffix(pattern, "/*"); found {
			if p == prefix || strings.HasPrefix(p, prefix+"/") {
				return true
			}
		}
	}
	return false
}

// routePath returns the path chi dispatches on, with any encoded
// separators left as they are.
func routePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		return rctx.RoutePath
	}
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	return r.URL.Path
}

// bearer extracts the token from the configured header. A "Bearer " prefix is
// optional.
func (g *Gate) bearer(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get(g.header))
	if len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
		return strings.TrimSpace(v[7:])
	}
	return v
}

// Authenticate is the middleware. Public routes pass through unconditionally;
// every other request needs a valid token whose subject still resolves to a
// live user. On success the Principal is attached to the request context.
func (g *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if p := routePath(r); g.IsPublic(p) {
			g.logger.DebugContext(ctx, "Skipping authentication for public route", slog.String("path", p))
			next.ServeHTTP(w, r)
			return
		}

		raw := g.bearer(r)
		if raw == "" {
			g.reject(ctx, w, r, reasonMissingToken, nil)
			return
		}

		claims, err := g.tokens.Validate(raw)
		if err != nil {
			g.reject(ctx, w, r, reasonTokenInvalid, err)
			return
		}

		if g.tokens.Expired(claims) {
			if !g.sliding || !g.tokens.WithinWindow(claims, g.slidingWindow) {
				g.reject(ctx, w, r, reasonTokenExpired, api.ErrTokenExpired,
					slog.String("subject", claims.Subject), slog.Time("expired_at", claims.Expiry()))
				return
			}
			signed, fresh, err := g.tokens.Refresh(raw)
			if err != nil {
				g.reject(ctx, w, r, reasonRefreshFailed, err)
				return
			}
			if g.tokens.Expired(fresh) {
				g.reject(ctx, w, r, reasonRefreshFailed, api.ErrTokenExpired)
				return
			}
			g.logger.InfoContext(ctx, "Expired token refreshed", slog.String("subject", fresh.Subject))
			w.Header().Set(g.header, "Bearer "+signed)
			claims = fresh
		}

		identity, err := g.identities.FindBySubject(ctx, claims.Subject)
		switch {
		case errors.Is(err, api.ErrNotFound):
			g.reject(ctx, w, r, reasonUnknownSubject, err, slog.String("subject", claims.Subject))
			return
		case err != nil:
			g.logger.ErrorContext(ctx, "Identity lookup failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
			return
		case identity.Deleted:
			g.reject(ctx, w, r, reasonUserDeleted, api.ErrUnauthenticated, slog.String("subject", claims.Subject))
			return
		case !strings.EqualFold(identity.Subject, claims.Subject):
			g.reject(ctx, w, r, reasonSubjectMismatch, api.ErrUnauthenticated,
				slog.String("token_subject", claims.Subject), slog.String("store_subject", identity.Subject))
			return
		}

		p := appMiddleware.Principal{
			UserID:  identity.ID,
			Subject: identity.Subject,
			Role:    identity.Role,
		}
		ctx = appMiddleware.WithPrincipal(ctx, p)
		g.logger.DebugContext(ctx, "Authentication successful",
			slog.String("subject", p.Subject), slog.String("role", string(p.Role)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Gate) reject(ctx context.Context, w http.ResponseWriter, r *http.Request, reason string, err error, attrs ...any) {
	args := append([]any{slog.String("reason", reason), slog.String("path", r.URL.Path)}, attrs...)
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	g.logger.WarnContext(ctx, "Request rejected", args...)
	recordAuthAttempt(ctx, reason)

	w.Header().Set("WWW-Authenticate", `Bearer realm="realestate-ads"`)
	api.FailureResponse(w, r, http.StatusUnauthorized, "authentication", unauthorizedMessage)
}
