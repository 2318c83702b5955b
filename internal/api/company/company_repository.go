package company

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

var _ CompanyRepo = (*PostgresCompanyRepo)(nil)

type CompanyRepo interface {
	Search(ctx context.Context, p search.Predicate, page search.Pageable) (search.Page[types.Company], error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Company, error)
}

var Aliases = search.Aliases{
	search.JoinRoot:     "c",
	search.JoinLocation: "l",
}

const (
	companyColumns = `
        SELECT c.id, c.name, c.email, c.phone_number,
               l.id, l.country, l.city, l.street, l.number`
	companyFrom = `
        FROM companies c
        JOIN locations l ON l.id = c.location_id`
)

type PostgresCompanyRepo struct {
	logger *slog.Logger
	db     database.DBTX
}

func NewPostgresCompanyRepo(db database.DBTX, logger *slog.Logger) *PostgresCompanyRepo {
	return &PostgresCompanyRepo{
		logger: logger,
		db:     db,
	}
}

func scanCompany(row pgx.Row) (types.Company, error) {
	var c types.Company
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber,
		&c.Location.ID, &c.Location.Country, &c.Location.City, &c.Location.Street, &c.Location.Number)
	return c, err
}

func (r *PostgresCompanyRepo) Search(ctx context.Context, p search.Predicate, page search.Pageable) (search.Page[types.Company], error) {
	ctx, span := otel.Tracer("CompanyRepo").Start(ctx, "Search")
	defer span.End()

	result := search.Page[types.Company]{Items: make([]types.Company, 0)}
	where, args, err := p.SQL(Aliases, 1)
	if err != nil {
		return result, fmt.Errorf("failed to render company predicate: %w", err)
	}

	start := time.Now()
	err = r.db.QueryRow(ctx, "SELECT COUNT(*)"+companyFrom+"\n        WHERE "+where, args...).Scan(&result.Total)
	metrics.ObserveQuery(ctx, "CountCompanies", start, err)
	if err != nil {
		span.RecordError(err)
		return result, fmt.Errorf("failed to count companies: %w", err)
	}
	if result.Total == 0 || int64(page.Offset()) >= result.Total {
		return result, nil
	}

	query := fmt.Sprintf("%s%s\n        WHERE %s\n        ORDER BY %s\n        LIMIT $%d OFFSET $%d",
		companyColumns, companyFrom, where, page.OrderBy(Aliases), len(args)+1, len(args)+2)

	start = time.Now()
	rows, err := r.db.Query(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		metrics.ObserveQuery(ctx, "SearchCompanies", start, err)
		span.RecordError(err)
		return result, fmt.Errorf("failed to search companies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return result, fmt.Errorf("failed to scan company: %w", err)
		}
		result.Items = append(result.Items, c)
	}
	err = rows.Err()
	metrics.ObserveQuery(ctx, "SearchCompanies", start, err)
	if err != nil {
		return result, fmt.Errorf("error iterating companies: %w", err)
	}
	return result, nil
}

func (r *PostgresCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Company, error) {
	ctx, span := otel.Tracer("CompanyRepo").Start(ctx, "GetByID")
	defer span.End()

	start := time.Now()
	c, err := scanCompany(r.db.QueryRow(ctx, companyColumns+companyFrom+`
        WHERE c.id = $1 AND c.deleted = FALSE`, id))
	metrics.ObserveQuery(ctx, "GetCompany", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("company %s: %w", id, api.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	return &c, nil
}
