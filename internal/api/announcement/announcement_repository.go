package announcement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	database "github.com/FACorreiaa/realestate-ads/app/db"
	"github.com/FACorreiaa/realestate-ads/app/observability/metrics"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/search"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

var _ AnnouncementRepo = (*PostgresAnnouncementRepo)(nil)

type AnnouncementRepo interface {
	Search(ctx context.Context, p search.Predicate, page search.Pageable) (search.Page[types.Announcement], error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Announcement, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CreateReport(ctx context.Context, report types.Report) (*types.Report, error)
	AddImage(ctx context.Context, image types.Image) (*types.Image, error)
}

// Aliases used in announcementFrom.
var Aliases = search.Aliases{
	search.JoinRoot:       "a",
	search.JoinAuthor:     "u",
	search.JoinRealEstate: "re",
	search.JoinLocation:   "l",
}

const announcementColumns = `
        SELECT a.id, a.title, a.description, a.price, a.type, a.phone_number, a.created_at,
               u.id, u.first_name, u.last_name,
               re.id, re.name, re.area, re.heating_type, re.parking, re.balcony, re.furnished, re.air_conditioning,
               l.id, l.country, l.city, l.street, l.number`

const announcementFrom = `
        FROM announcements a
        JOIN users u ON u.id = a.author_id
        JOIN real_estates re ON re.id = a.real_estate_id
        JOIN locations l ON l.id = re.location_id`

type PostgresAnnouncementRepo struct {
	logger *slog.Logger
	db     database.DBTX
}

func NewPostgresAnnouncementRepo(db database.DBTX, logger *slog.Logger) *PostgresAnnouncementRepo {
	return &PostgresAnnouncementRepo{
		logger: logger,
		db:     db,
	}
}

func scanAnnouncement(row pgx.Row) (types.Announcement, error) {
	var a types.Announcement
	re := &a.RealEstate
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Price, &a.Type, &a.PhoneNumber, &a.CreatedAt,
		&a.Author.ID, &a.Author.FirstName, &a.Author.LastName,
		&re.ID, &re.Name, &re.Area, &re.HeatingType, &re.Parking, &re.Balcony, &re.Furnished, &re.AirConditioning,
		&re.Location.ID, &re.Location.Country, &re.Location.City, &re.Location.Street, &re.Location.Number,
	)
	return a, err
}

// Search counts the announcements matching p and loads the requested page.
// The page query is skipped when nothing matches.
func (r *PostgresAnnouncementRepo) Search(ctx context.Context, p search.Predicate, page search.Pageable) (search.Page[types.Announcement], error) {
	ctx, span := otel.Tracer("AnnouncementRepo").Start(ctx, "Search")
	defer span.End()

	var result search.Page[types.Announcement]
	where, args, err := p.SQL(Aliases, 1)
	if err != nil {
		span.RecordError(err)
		return result, fmt.Errorf("failed to render announcement predicate: %w", err)
	}
	span.SetAttributes(attribute.Int("search.conditions", p.Len()))

	start := time.Now()
	err = r.db.QueryRow(ctx, "SELECT COUNT(*)"+announcementFrom+"\n        WHERE "+where, args...).Scan(&result.Total)
	metrics.ObserveQuery(ctx, "CountAnnouncements", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count failed")
		return result, fmt.Errorf("failed to count announcements: %w", err)
	}
	result.Items = make([]types.Announcement, 0)
	if result.Total == 0 || int64(page.Offset()) >= result.Total {
		return result, nil
	}

	query := fmt.Sprintf("%s%s\n        WHERE %s\n        ORDER BY %s\n        LIMIT $%d OFFSET $%d",
		announcementColumns, announcementFrom, where, page.OrderBy(Aliases), len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	start = time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		metrics.ObserveQuery(ctx, "SearchAnnouncements", start, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return result, fmt.Errorf("failed to search announcements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			span.RecordError(err)
			return result, fmt.Errorf("failed to scan announcement: %w", err)
		}
		result.Items = append(result.Items, a)
	}
	err = rows.Err()
	metrics.ObserveQuery(ctx, "SearchAnnouncements", start, err)
	if err != nil {
		span.RecordError(err)
		return result, fmt.Errorf("error iterating announcements: %w", err)
	}
	return result, nil
}

func (r *PostgresAnnouncementRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Announcement, error) {
	ctx, span := otel.Tracer("AnnouncementRepo").Start(ctx, "GetByID")
	defer span.End()

	query := announcementColumns + announcementFrom + `
        WHERE a.id = $1 AND a.deleted = FALSE`

	start := time.Now()
	a, err := scanAnnouncement(r.db.QueryRow(ctx, query, id))
	metrics.ObserveQuery(ctx, "GetAnnouncement", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("announcement %s: %w", id, api.ErrNotFound)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load announcement: %w", err)
	}
	return &a, nil
}

// SoftDelete marks the announcement deleted. Deleting an already deleted or
// unknown announcement is api.ErrNotFound.
func (r *PostgresAnnouncementRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("AnnouncementRepo").Start(ctx, "SoftDelete")
	defer span.End()

	start := time.Now()
	tag, err := r.db.Exec(ctx, `UPDATE announcements SET deleted = TRUE WHERE id = $1 AND deleted = FALSE`, id)
	metrics.ObserveQuery(ctx, "DeleteAnnouncement", start, err)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("announcement %s: %w", id, api.ErrNotFound)
	}
	r.logger.InfoContext(ctx, "Announcement soft deleted", slog.String("announcement_id", id.String()))
	return nil
}

func (r *PostgresAnnouncementRepo) CreateReport(ctx context.Context, report types.Report) (*types.Report, error) {
	ctx, span := otel.Tracer("AnnouncementRepo").Start(ctx, "CreateReport")
	defer span.End()

	query := `
        INSERT INTO reports (announcement_id, reporter_id, reason)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	start := time.Now()
	err := r.db.QueryRow(ctx, query, report.AnnouncementID, report.ReporterID, report.Reason).
		Scan(&report.ID, &report.CreatedAt)
	metrics.ObserveQuery(ctx, "CreateReport", start, err)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}
	return &report, nil
}

func (r *PostgresAnnouncementRepo) AddImage(ctx context.Context, image types.Image) (*types.Image, error) {
	ctx, span := otel.Tracer("AnnouncementRepo").Start(ctx, "AddImage")
	defer span.End()

	query := `
        INSERT INTO images (announcement_id, object_key, url)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	start := time.Now()
	err := r.db.QueryRow(ctx, query, image.AnnouncementID, image.ObjectKey, image.URL).
		Scan(&image.ID, &image.CreatedAt)
	metrics.ObserveQuery(ctx, "AddImage", start, err)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("image %s: %w", image.ObjectKey, api.ErrConflict)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to insert image: %w", err)
	}
	return &image, nil
}
