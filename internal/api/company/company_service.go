package company

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/realestate-ads/app/observability/metrics"
	"github.com/FACorreiaa/realestate-ads/internal/search"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

var _ CompanyService = (*CompanyServiceImpl)(nil)

type CompanyService interface {
	Search(ctx context.Context, criteria search.CompanyCriteria, page search.Pageable) (search.Page[types.Company], error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Company, error)
}

type CompanyServiceImpl struct {
	logger *slog.Logger
	repo   CompanyRepo
}

func NewCompanyService(repo CompanyRepo, logger *slog.Logger) *CompanyServiceImpl {
	return &CompanyServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *CompanyServiceImpl) Search(ctx context.Context, criteria search.CompanyCriteria, page search.Pageable) (search.Page[types.Company], error) {
	ctx, span := otel.Tracer("CompanyService").Start(ctx, "Search")
	defer span.End()
	start := time.Now()

	p, err := search.ForCompanies(criteria)
	if err != nil {
		metrics.ObserveSearch(ctx, string(search.FamilyCompany), start, err)
		return search.Page[types.Company]{}, err
	}
	s.logger.DebugContext(ctx, "Searching companies", slog.String("predicate", p.String()))

	result, err := s.repo.Search(ctx, p, page)
	metrics.ObserveSearch(ctx, string(search.FamilyCompany), start, err)
	if err != nil {
		span.RecordError(err)
		return search.Page[types.Company]{}, fmt.Errorf("error searching companies: %w", err)
	}
	return result, nil
}

func (s *CompanyServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*types.Company, error) {
	return s.repo.GetByID(ctx, id)
}
