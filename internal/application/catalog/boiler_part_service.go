// Package catalog implements read access to the boiler part catalog.
package catalog

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/boilerparts/backend/internal/domain/catalog"
	"github.com/boilerparts/backend/internal/domain/shared"
	"github.com/boilerparts/backend/internal/infrastructure/config"
	"github.com/boilerparts/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Defaults used when CatalogConfig leaves a value unset
const (
	DefaultPageSize    = 20
	DefaultSearchLimit = 20
)

// RowsPerPageIndex converts the offset query parameter, a page index, into a
// row offset. It is fixed: clients compute pages with it regardless of limit.
const RowsPerPageIndex = 20

// BoilerPartService provides catalog browsing
type BoilerPartService struct {
	repo        catalog.BoilerPartRepository
	pageSize    int
	searchLimit int
	logger      *zap.Logger
}

// NewBoilerPartService creates a new BoilerPartService
func NewBoilerPartService(repo catalog.BoilerPartRepository, cfg config.CatalogConfig, logger *zap.Logger) *BoilerPartService {
	s := &BoilerPartService{
		repo:        repo,
		pageSize:    cfg.PageSize,
		searchLimit: cfg.SearchLimit,
		logger:      logger,
	}
	if s.pageSize <= 0 {
		s.pageSize = DefaultPageSize
	}
	if s.searchLimit <= 0 {
		s.searchLimit = DefaultSearchLimit
	}
	return s
}

// PaginateAndFilter returns one page of parts and the total number of parts
// matching the filters. The row offset is Offset * RowsPerPageIndex.
func (s *BoilerPartService) PaginateAndFilter(ctx context.Context, q PartQuery) (*shared.CountedRows[BoilerPartResponse], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "boiler_parts", "paginate_and_filter")
	defer span.End()

	filter, err := s.buildFilter(q)
	if err != nil {
		return nil, err
	}

	parts, total, err := s.repo.FindAndCount(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list boiler parts", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrRows, len(parts))

	return &shared.CountedRows[BoilerPartResponse]{
		Count: total,
		Rows:  ToBoilerPartResponses(parts),
	}, nil
}

func (s *BoilerPartService) buildFilter(q PartQuery) (catalog.PartFilter, error) {
	filter := catalog.PartFilter{Limit: s.pageSize}

	if q.Limit != "" {
		limit, err := parseNonNegative("limit", q.Limit)
		if err != nil {
			return filter, err
		}
		filter.Limit = limit
	}
	if q.Offset != "" {
		page, err := parseNonNegative("offset", q.Offset)
		if err != nil {
			return filter, err
		}
		if page > math.MaxInt/RowsPerPageIndex {
			return filter, shared.InvalidInputf("offset is too large")
		}
		filter.Offset = page * RowsPerPageIndex
	}

	if q.PriceFrom != "" {
		from, err := decimal.NewFromString(strings.TrimSpace(q.PriceFrom))
		if err != nil {
			return filter, shared.InvalidInputf("priceFrom must be a number")
		}
		v := from.Ceil().IntPart()
		filter.PriceFrom = &v
	}
	if q.PriceTo != "" {
		to, err := decimal.NewFromString(strings.TrimSpace(q.PriceTo))
		if err != nil {
			return filter, shared.InvalidInputf("priceTo must be a number")
		}
		v := to.Floor().IntPart()
		filter.PriceTo = &v
	}

	if q.Boiler != "" {
		list, err := catalog.ParseManufacturerList("boiler", q.Boiler)
		if err != nil {
			return filter, err
		}
		filter.BoilerManufacturers = list
	}
	if q.Parts != "" {
		list, err := catalog.ParseManufacturerList("parts", q.Parts)
		if err != nil {
			return filter, err
		}
		filter.PartsManufacturers = list
	}
	return filter, nil
}

func parseNonNegative(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, shared.InvalidInputf("%s must be a non-negative integer", field)
	}
	return n, nil
}

// Bestsellers returns every bestseller
func (s *BoilerPartService) Bestsellers(ctx context.Context) (*shared.CountedRows[BoilerPartResponse], error) {
	parts, err := s.repo.FindBestsellers(ctx)
	if err != nil {
		s.logger.Error("Failed to list bestsellers", zap.Error(err))
		return nil, err
	}
	rows := shared.NewCountedRows(ToBoilerPartResponses(parts))
	return &rows, nil
}

// New returns every part flagged as new
func (s *BoilerPartService) New(ctx context.Context) (*shared.CountedRows[BoilerPartResponse], error) {
	parts, err := s.repo.FindNew(ctx)
	if err != nil {
		s.logger.Error("Failed to list new parts", zap.Error(err))
		return nil, err
	}
	rows := shared.NewCountedRows(ToBoilerPartResponses(parts))
	return &rows, nil
}

// FindOne returns the part with the given ID
func (s *BoilerPartService) FindOne(ctx context.Context, id int64) (*BoilerPartResponse, error) {
	part, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundf("Boiler part with id %d not found", id)
		}
		return nil, err
	}
	resp := ToBoilerPartResponse(part)
	return &resp, nil
}

// FindOneByName returns the part with exactly the given name
func (s *BoilerPartService) FindOneByName(ctx context.Context, name string) (*BoilerPartResponse, error) {
	part, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundf("Boiler part with name %q not found", name)
		}
		return nil, err
	}
	resp := ToBoilerPartResponse(part)
	return &resp, nil
}

// SearchByString returns parts whose name contains str. The result is capped
// at the search limit and Count is the size of the capped result, not the
// number of all matches.
func (s *BoilerPartService) SearchByString(ctx context.Context, str string) (*shared.CountedRows[BoilerPartResponse], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "boiler_parts", "search")
	defer span.End()

	parts, err := s.repo.SearchByName(ctx, str, s.searchLimit)
	if err != nil {
		s.logger.Error("Failed to search boiler parts", zap.String("search", str), zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, err
	}
	rows := shared.NewCountedRows(ToBoilerPartResponses(parts))
	return &rows, nil
}
