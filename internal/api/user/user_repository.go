package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	database "github.com/FACorreiaa/realestate-ads/app/db"
	"github.com/FACorreiaa/realestate-ads/app/observability/metrics"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/search"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

var _ UserRepo = (*PostgresUserRepo)(nil)

type UserRepo interface {
	Search(ctx context.Context, p search.Predicate, page search.Pageable) (search.Page[types.User], error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
}

var Aliases = search.Aliases{
	search.JoinRoot:    "u",
	search.JoinCompany: "c",
}

const (
	userColumns = `
        SELECT u.id, u.email, u.first_name, u.last_name, u.phone_number, u.role,
               u.company_id, COALESCE(c.name, ''), u.company_verified, u.created_at`
	userFrom = `
        FROM users u
        LEFT JOIN companies c ON c.id = u.company_id`
)

type PostgresUserRepo struct {
	logger *slog.Logger
	db     database.DBTX
}

func NewPostgresUserRepo(db database.DBTX, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		db:     db,
	}
}

func scanUser(row pgx.Row) (types.User, error) {
	var (
		u        types.User
		verified *string
	)
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.Role,
		&u.CompanyID, &u.CompanyName, &verified, &u.CreatedAt)
	if err != nil {
		return u, err
	}
	if verified != nil {
		v := types.VerificationStatus(*verified)
		u.CompanyVerified = &v
	}
	return u, nil
}

func (r *PostgresUserRepo) Search(ctx context.Context, p search.Predicate, page search.Pageable) (search.Page[types.User], error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "Search")
	defer span.End()

	result := search.Page[types.User]{Items: make([]types.User, 0)}
	where, args, err := p.SQL(Aliases, 1)
	if err != nil {
		return result, fmt.Errorf("failed to render user predicate: %w", err)
	}

	start := time.Now()
	err = r.db.QueryRow(ctx, "SELECT COUNT(*)"+userFrom+"\n        WHERE "+where, args...).Scan(&result.Total)
	metrics.ObserveQuery(ctx, "CountUsers", start, err)
	if err != nil {
		span.RecordError(err)
		return result, fmt.Errorf("failed to count users: %w", err)
	}
	if result.Total == 0 || int64(page.Offset()) >= result.Total {
		return result, nil
	}

	query := fmt.Sprintf("%s%s\n        WHERE %s\n        ORDER BY %s\n        LIMIT $%d OFFSET $%d",
		userColumns, userFrom, where, page.OrderBy(Aliases), len(args)+1, len(args)+2)

	start = time.Now()
	rows, err := r.db.Query(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		metrics.ObserveQuery(ctx, "SearchUsers", start, err)
		span.RecordError(err)
		return result, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return result, fmt.Errorf("failed to scan user: %w", err)
		}
		result.Items = append(result.Items, u)
	}
	err = rows.Err()
	metrics.ObserveQuery(ctx, "SearchUsers", start, err)
	if err != nil {
		return result, fmt.Errorf("error iterating users: %w", err)
	}
	return result, nil
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetByID")
	defer span.End()

	start := time.Now()
	u, err := scanUser(r.db.QueryRow(ctx, userColumns+userFrom+`
        WHERE u.id = $1 AND u.deleted = FALSE`, id))
	metrics.ObserveQuery(ctx, "GetUser", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, api.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}
