package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/realestate-ads/app/observability/metrics"
	"github.com/FACorreiaa/realestate-ads/internal/search"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

// Ensure implementation satisfies the interface
var _ UserService = (*UserServiceImpl)(nil)

// UserService defines the business logic contract for user lookups.
type UserService interface {
	Search(ctx context.Context, criteria search.UserCriteria, page search.Pageable) (search.Page[types.User], error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
}

// UserServiceImpl provides the implementation for UserService.
type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

// NewUserService creates a new user service instance.
func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// Search compiles the criteria and runs the paged query. A company name
// only matches members whose employment was accepted.
func (s *UserServiceImpl) Search(ctx context.Context, criteria search.UserCriteria, page search.Pageable) (search.Page[types.User], error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "Search")
	defer span.End()
	start := time.Now()
	l := s.logger.With(slog.String("method", "Search"))

	p, err := search.ForUsers(criteria)
	if err != nil {
		metrics.ObserveSearch(ctx, string(search.FamilyUser), start, err)
		return search.Page[types.User]{}, err
	}
	span.SetAttributes(attribute.String("search.predicate", p.String()))
	l.DebugContext(ctx, "Searching users", slog.Int("conditions", p.Len()))

	result, err := s.repo.Search(ctx, p, page)
	metrics.ObserveSearch(ctx, string(search.FamilyUser), start, err)
	if err != nil {
		l.ErrorContext(ctx, "User search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return search.Page[types.User]{}, fmt.Errorf("error searching users: %w", err)
	}
	return result, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	return s.repo.GetByID(ctx, id)
}
