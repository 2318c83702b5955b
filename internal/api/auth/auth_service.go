package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/realestate-ads/app/observability/metrics"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

const minPasswordLength = 8

var _ AuthService = (*AuthServiceImpl)(nil)

// dummyHash is compared against when no usable account exists so that a
// failed login costs one bcrypt round whatever the reason.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("realestate-ads-no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

type AuthService interface {
	// Login verifies credentials and issues a token (Issue).
	Login(ctx context.Context, email, password string) (*types.TokenResponse, error)
	Register(ctx context.Context, req types.RegisterRequest) (*types.User, error)
	// RefreshToken exchanges a token that is still valid, or expired within
	// the refresh window, for a new one.
	RefreshToken(ctx context.Context, token string) (*types.TokenResponse, error)
	Me(ctx context.Context, subject string) (*types.User, error)
}

type AuthServiceImpl struct {
	logger        *slog.Logger
	repo          AuthRepo
	tokens        *TokenService
	refreshWindow time.Duration
	compare       func(hash, password []byte) error
}

func NewAuthService(repo AuthRepo, tokens *TokenService, refreshWindow time.Duration, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger:        logger,
		repo:          repo,
		tokens:        tokens,
		refreshWindow: refreshWindow,
		compare:       bcrypt.CompareHashAndPassword,
	}
}

func recordAuthAttempt(ctx context.Context, outcome string) {
	metrics.Get().AuthAttemptsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Login resolves the identity for email and checks password against the
// stored bcrypt hash. Unknown, deleted and wrong-password accounts all fail
// with api.ErrUnauthenticated.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()

	l := s.logger.With(slog.String("method", "Login"))

	identity, err := s.repo.FindBySubject(ctx, email)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			_ = s.compare(dummyHash(), []byte(password))
			l.WarnContext(ctx, "Login for unknown subject")
			recordAuthAttempt(ctx, "unknown_subject")
			return nil, api.ErrUnauthenticated
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "identity lookup failed")
		return nil, fmt.Errorf("error looking up identity: %w", err)
	}
	if identity.Deleted {
		_ = s.compare(dummyHash(), []byte(password))
		l.WarnContext(ctx, "Login for deleted user", slog.String("user_id", identity.ID.String()))
		recordAuthAttempt(ctx, "user_deleted")
		return nil, api.ErrUnauthenticated
	}
	if err := s.compare([]byte(identity.PasswordHash), []byte(password)); err != nil {
		l.WarnContext(ctx, "Login with bad password", slog.String("user_id", identity.ID.String()))
		recordAuthAttempt(ctx, "bad_credentials")
		return nil, api.ErrUnauthenticated
	}

	token, exp, err := s.tokens.Issue(identity.ID, identity.Subject, identity.Role)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token signing failed")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	recordAuthAttempt(ctx, "success")
	l.InfoContext(ctx, "User logged in", slog.String("user_id", identity.ID.String()))
	span.SetStatus(codes.Ok, "logged in")
	return &types.TokenResponse{Token: token, ExpiresAt: exp.Unix()}, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, req types.RegisterRequest) (*types.User, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Register")
	defer span.End()

	l := s.logger.With(slog.String("method", "Register"))
	start := time.Now()
	defer func() {
		metrics.Get().RegisterRequestsTotal.Add(ctx, 1)
	}()

	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return nil, fmt.Errorf("%w: email is not a valid address", api.ErrValidation)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", api.ErrValidation, minPasswordLength)
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", api.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, req, string(hash))
	if err != nil {
		l.WarnContext(ctx, "Failed to register user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "create user failed")
		return nil, fmt.Errorf("error registering user: %w", err)
	}

	l.InfoContext(ctx, "User registered",
		slog.String("user_id", user.ID.String()),
		slog.Duration("latency", time.Since(start)),
	)
	span.SetStatus(codes.Ok, "registered")
	return user, nil
}

func (s *AuthServiceImpl) RefreshToken(ctx context.Context, token string) (*types.TokenResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "RefreshToken")
	defer span.End()

	l := s.logger.With(slog.String("method", "RefreshToken"))

	claims, err := s.tokens.Validate(token)
	if err != nil {
		l.WarnContext(ctx, "Refresh with invalid token", slog.Any("error", err))
		recordAuthAttempt(ctx, "token_invalid")
		return nil, err
	}
	if !s.tokens.WithinWindow(claims, s.refreshWindow) {
		l.WarnContext(ctx, "Refresh with token past the refresh window",
			slog.String("subject", claims.Subject), slog.Time("expired_at", claims.Expiry()))
		recordAuthAttempt(ctx, "token_expired")
		return nil, api.ErrTokenExpired
	}

	identity, err := s.repo.FindBySubject(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			recordAuthAttempt(ctx, "unknown_subject")
			return nil, api.ErrUnauthenticated
		}
		span.RecordError(err)
		return nil, fmt.Errorf("error looking up identity: %w", err)
	}
	if identity.Deleted {
		recordAuthAttempt(ctx, "user_deleted")
		return nil, api.ErrUnauthenticated
	}

	signed, fresh, err := s.tokens.Refresh(token)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error refreshing token: %w", err)
	}

	recordAuthAttempt(ctx, "refreshed")
	l.InfoContext(ctx, "Token refreshed", slog.String("subject", fresh.Subject))
	return &types.TokenResponse{Token: signed, ExpiresAt: fresh.Expiry().Unix()}, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, subject string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Me")
	defer span.End()

	user, err := s.repo.GetUserByEmail(ctx, subject)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error fetching current user: %w", err)
	}
	return user, nil
}
