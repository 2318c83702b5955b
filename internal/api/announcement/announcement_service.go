package announcement

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/realestate-ads/app/observability/metrics"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/search"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

const maxReportReason = 1000

var _ AnnouncementService = (*AnnouncementServiceImpl)(nil)

// ImageStore persists announcement images and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// ReportNotifier tells moderators about a new report.
type ReportNotifier interface {
	NotifyReport(ctx context.Context, announcement *types.Announcement, report *types.Report) error
}

// ImageUpload is a single file received for an announcement.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type AnnouncementService interface {
	Search(ctx context.Context, criteria search.AnnouncementCriteria, page search.Pageable) (search.Page[types.Announcement], error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Report(ctx context.Context, id, reporterID uuid.UUID, reason string) (*types.Report, error)
	UploadImage(ctx context.Context, id, uploaderID uuid.UUID, upload ImageUpload) (*types.Image, error)
}

type AnnouncementServiceImpl struct {
	logger   *slog.Logger
	repo     AnnouncementRepo
	images   ImageStore
	notifier ReportNotifier
}

func NewAnnouncementService(repo AnnouncementRepo, images ImageStore, notifier ReportNotifier, logger *slog.Logger) *AnnouncementServiceImpl {
	return &AnnouncementServiceImpl{
		logger:   logger,
		repo:     repo,
		images:   images,
		notifier: notifier,
	}
}

func (s *AnnouncementServiceImpl) Search(ctx context.Context, criteria search.AnnouncementCriteria, page search.Pageable) (search.Page[types.Announcement], error) {
	ctx, span := otel.Tracer("AnnouncementService").Start(ctx, "Search")
	defer span.End()
	start := time.Now()

	p, err := search.ForAnnouncements(criteria)
	if err != nil {
		metrics.ObserveSearch(ctx, string(search.FamilyAnnouncement), start, err)
		span.RecordError(err)
		return search.Page[types.Announcement]{}, err
	}
	s.logger.DebugContext(ctx, "Searching announcements", slog.String("predicate", p.String()))

	result, err := s.repo.Search(ctx, p, page)
	metrics.ObserveSearch(ctx, string(search.FamilyAnnouncement), start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return search.Page[types.Announcement]{}, fmt.Errorf("error searching announcements: %w", err)
	}
	span.SetAttributes(attribute.Int64("search.total", result.Total))
	return result, nil
}

func (s *AnnouncementServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*types.Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AnnouncementServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	l := s.logger.With(slog.String("method", "Delete"), slog.String("announcement_id", id.String()))
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		l.WarnContext(ctx, "Failed to delete announcement", slog.Any("error", err))
		return err
	}
	return nil
}

// Report records a complaint about a live announcement. Mail delivery to the
// moderators is best effort and never fails the request.
func (s *AnnouncementServiceImpl) Report(ctx context.Context, id, reporterID uuid.UUID, reason string) (*types.Report, error) {
	ctx, span := otel.Tracer("AnnouncementService").Start(ctx, "Report")
	defer span.End()
	l := s.logger.With(slog.String("method", "Report"), slog.String("announcement_id", id.String()))

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", api.ErrValidation)
	}
	if utf8.RuneCountInString(reason) > maxReportReason {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", api.ErrValidation, maxReportReason)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report, err := s.repo.CreateReport(ctx, types.Report{AnnouncementID: id, ReporterID: reporterID, Reason: reason})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error creating report: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyReport(ctx, a, report); err != nil {
			l.WarnContext(ctx, "Failed to notify moderators", slog.Any("error", err))
		}
	}
	l.InfoContext(ctx, "Announcement reported", slog.String("report_id", report.ID.String()))
	return report, nil
}

// UploadImage stores an image for an announcement owned by uploaderID. The
// stored object is removed again if the database insert fails.
func (s *AnnouncementServiceImpl) UploadImage(ctx context.Context, id, uploaderID uuid.UUID, upload ImageUpload) (*types.Image, error) {
	ctx, span := otel.Tracer("AnnouncementService").Start(ctx, "UploadImage")
	defer span.End()
	l := s.logger.With(slog.String("method", "UploadImage"), slog.String("announcement_id", id.String()))

	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", api.ErrValidation, upload.ContentType)
	}
	if upload.Size <= 0 {
		return nil, fmt.Errorf("%w: empty file", api.ErrValidation)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Author.ID != uploaderID {
		return nil, fmt.Errorf("only the author may add images: %w", api.ErrForbidden)
	}

	key := ObjectKey(id, upload.Filename)
	url, err := s.images.Put(ctx, key, upload.Body, upload.Size, upload.ContentType)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error storing image: %w", err)
	}

	image, err := s.repo.AddImage(ctx, types.Image{AnnouncementID: id, ObjectKey: key, URL: url})
	if err != nil {
		span.RecordError(err)
		if rmErr := s.images.Remove(ctx, key); rmErr != nil {
			l.ErrorContext(ctx, "Failed to remove orphaned image", slog.String("key", key), slog.Any("error", rmErr))
		}
		return nil, fmt.Errorf("error saving image: %w", err)
	}
	return image, nil
}

// ObjectKey is announcements/<id>/<random>.<ext>, keeping the original
// extension in lower case.
func ObjectKey(announcementID uuid.UUID, filename string) string {
	return fmt.Sprintf("announcements/%s/%s%s", announcementID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
}
