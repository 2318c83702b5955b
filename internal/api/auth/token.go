package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/FACorreiaa/realestate-ads/config"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

// Claims is the payload of an access token. The subject is the user's email.
type Claims struct {
	UserID string     `json:"uid,omitempty"`
	Role   types.Role `json:"role"`
	jwt.RegisteredClaims
}

// Expiry returns the expiry instant. Validated claims always carry one.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenService signs and verifies HS256 access tokens. It holds only
// immutable configuration and is safe for concurrent use.
type TokenService struct {
	signingKey []byte
	issuer     string
	audience   string
	ttl        time.Duration
	parser     *jwt.Parser
	now        func() time.Time
}

type TokenOption func(*TokenService)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(cfg config.JWTConfig, opts ...TokenOption) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("JWT signing key cannot be empty")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("JWT access token TTL must be positive, got %s", cfg.AccessTokenTTL)
	}
	s := &TokenService{
		signingKey: []byte(cfg.SecretKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		ttl:        cfg.AccessTokenTTL,
		// Expiry is checked by IsExpired so that expired tokens can still be
		// read for refresh.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a new token for the identity.
func (s *TokenService) Issue(userID uuid.UUID, subject string, role types.Role) (string, time.Time, error) {
	now := s.now()
	return s.sign(userID.String(), subject, role, now, now.Add(s.ttl))
}

func (s *TokenService) sign(userID, subject string, role types.Role, issuedAt, expiresAt time.Time) (string, time.Time, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Validate verifies the signature and the static claims of raw and returns
// them. Expiry is not checked here. Any failure, including garbage input,
// is reported as api.ErrTokenInvalid wrapping the cause.
func (s *TokenService) Validate(raw string) (*Claims, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", api.ErrTokenInvalid)
	}

	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: signature not verified", api.ErrTokenInvalid)
	}

	switch {
	case claims.Subject == "":
		return nil, fmt.Errorf("%w: missing subject", api.ErrTokenInvalid)
	case claims.ExpiresAt == nil:
		return nil, fmt.Errorf("%w: missing expiry", api.ErrTokenInvalid)
	case !claims.Role.Valid():
		return nil, fmt.Errorf("%w: unknown role %q", api.ErrTokenInvalid, claims.Role)
	case claims.Issuer != s.issuer:
		return nil, fmt.Errorf("%w: issuer %q", api.ErrTokenInvalid, claims.Issuer)
	case !api.VerifyAudience(claims.Audience, s.audience):
		return nil, fmt.Errorf("%w: audience %v", api.ErrTokenInvalid, claims.Audience)
	}
	return claims, nil
}

// Expired reports whether the current time is at or after the expiry.
func (s *TokenService) Expired(c *Claims) bool {
	return !s.now().Before(c.Expiry())
}

// WithinWindow reports whether c has not expired, or expired no more than
// window ago.
func (s *TokenService) WithinWindow(c *Claims, window time.Duration) bool {
	return !s.Expired(c) || s.now().Sub(c.Expiry()) <= window
}

// IsExpired validates raw and reports whether it has expired.
func (s *TokenService) IsExpired(raw string) (bool, error) {
	claims, err := s.Validate(raw)
	if err != nil {
		return false, err
	}
	return s.Expired(claims), nil
}

// Refresh re-issues raw with the same subject and role and a new issued-at
// and expiry. raw may already be expired; it must still verify. The new
// expiry is always strictly later than the old one.
func (s *TokenService) Refresh(raw string) (string, *Claims, error) {
	old, err := s.Validate(raw)
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	exp := now.Add(s.ttl)
	if floor := old.Expiry().Add(jwt.TimePrecision); exp.Before(floor) {
		exp = floor
	}

	signed, _, err := s.sign(old.UserID, old.Subject, old.Role, now, exp)
	if err != nil {
		return "", nil, err
	}
	fresh, err := s.Validate(signed)
	if err != nil {
		return "", nil, err
	}
	return signed, fresh, nil
}
