package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	database "github.com/FACorreiaa/realestate-ads/app/db"
	"github.com/FACorreiaa/realestate-ads/app/observability/metrics"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// IdentityStore resolves a token subject to the stored identity.
type IdentityStore interface {
	FindBySubject(ctx context.Context, subject string) (*types.Identity, error)
}

type AuthRepo interface {
	IdentityStore
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	CreateUser(ctx context.Context, req types.RegisterRequest, passwordHash string) (*types.User, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	db     database.DBTX
}

func NewPostgresAuthRepo(db database.DBTX, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		db:     db,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindBySubject returns the identity whose email equals subject. Deleted
// users are returned with Deleted set so callers can tell them apart from
// unknown subjects.
func (r *PostgresAuthRepo) FindBySubject(ctx context.Context, subject string) (*types.Identity, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "FindBySubject")
	defer span.End()

	query := `
        SELECT id, email, role, password_hash, company_verified, deleted
        FROM users
        WHERE email = $1
    `
	var (
		id       types.Identity
		role     string
		verified *string
	)
	start := time.Now()
	err := r.db.QueryRow(ctx, query, normalizeEmail(subject)).Scan(
		&id.ID, &id.Subject, &role, &id.PasswordHash, &verified, &id.Deleted,
	)
	metrics.ObserveQuery(ctx, "FindBySubject", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("identity %q: %w", subject, api.ErrNotFound)
		}
		span.RecordError(err)
		r.logger.ErrorContext(ctx, "Failed to query identity", slog.Any("error", err))
		return nil, fmt.Errorf("failed to query identity: %w", err)
	}

	id.Role = types.Role(role)
	if verified != nil {
		v := types.VerificationStatus(*verified)
		id.CompanyVerified = &v
	}
	return &id, nil
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByEmail")
	defer span.End()

	query := `
        SELECT u.id, u.email, u.first_name, u.last_name, u.phone_number, u.role,
               u.company_id, COALESCE(c.name, ''), u.company_verified, u.created_at
        FROM users u
        LEFT JOIN companies c ON c.id = u.company_id
        WHERE u.email = $1 AND u.deleted = FALSE
    `
	var (
		u        types.User
		role     string
		verified *string
	)
	start := time.Now()
	err := r.db.QueryRow(ctx, query, normalizeEmail(email)).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber, &role,
		&u.CompanyID, &u.CompanyName, &verified, &u.CreatedAt,
	)
	metrics.ObserveQuery(ctx, "GetUserByEmail", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", email, api.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	u.Role = types.Role(role)
	if verified != nil {
		v := types.VerificationStatus(*verified)
		u.CompanyVerified = &v
	}
	return &u, nil
}

// CreateUser inserts a ROLE_USER account. A taken email is api.ErrConflict.
func (r *PostgresAuthRepo) CreateUser(ctx context.Context, req types.RegisterRequest, passwordHash string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "CreateUser")
	defer span.End()

	query := `
        INSERT INTO users (email, password_hash, first_name, last_name, phone_number, role)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	u := types.User{
		Email:       normalizeEmail(req.Email),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Role:        types.RoleUser,
	}
	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		u.Email, passwordHash, u.FirstName, u.LastName, u.PhoneNumber, string(u.Role),
	).Scan(&u.ID, &u.CreatedAt)
	metrics.ObserveQuery(ctx, "CreateUser", start, err)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("email %q: %w", u.Email, api.ErrConflict)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &u, nil
}
