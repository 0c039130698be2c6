package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"country-data/internal/domain"
)

// ErrCountryNotFound is returned by ByCode when upstream answers with no record.
var ErrCountryNotFound = errors.New("country not found")

// CountryClient defines the interface for the upstream country data source.
type CountryClient interface {
	All(ctx context.Context) ([]domain.Country, error)
	ByCode(ctx context.Context, code string) ([]domain.Country, error)
}

// CountryService defines the gateway's read operations. Every call fetches
// fresh upstream data.
//
//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type CountryService interface {
	List(ctx context.Context) ([]domain.Summary, error)
	ByCode(ctx context.Context, code string) (domain.Detail, error)
	ByRegion(ctx context.Context, region string) ([]domain.Summary, error)
	Search(ctx context.Context, q Query) ([]domain.Summary, error)
}

type countryService struct {
	client CountryClient
	logger *zap.Logger
	tracer trace.Tracer
}

// NewCountryService creates a new instance of the country service.
func NewCountryService(client CountryClient, logger *zap.Logger) CountryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &countryService{
		client: client,
		logger: logger,
		tracer: otel.Tracer("country-data/internal/service"),
	}
}

func (s *countryService) List(ctx context.Context) ([]domain.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "CountryService.List")
	defer span.End()

	countries, err := s.all(ctx, span)
	if err != nil {
		return nil, err
	}
	return summarize(countries), nil
}

func (s *countryService) ByCode(ctx context.Context, code string) (domain.Detail, error) {
	ctx, span := s.tracer.Start(ctx, "CountryService.ByCode", trace.WithAttributes(attribute.String("country.code", code)))
	defer span.End()

	countries, err := s.client.ByCode(ctx, code)
	if err != nil {
		recordError(span, err)
		return domain.Detail{}, err
	}
	if len(countries) == 0 {
		recordError(span, ErrCountryNotFound)
		return domain.Detail{}, ErrCountryNotFound
	}
	return countries[0].Detail(), nil
}

func (s *countryService) ByRegion(ctx context.Context, region string) ([]domain.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "CountryService.ByRegion", trace.WithAttributes(attribute.String("country.region", region)))
	defer span.End()

	s.logger.Debug("filtering countries by region", zap.String("region", region))

	countries, err := s.all(ctx, span)
	if err != nil {
		return nil, err
	}
	return summarize(Apply(countries, RegionEquals(region))), nil
}

func (s *countryService) Search(ctx context.Context, q Query) ([]domain.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "CountryService.Search", trace.WithAttributes(
		attribute.String("query.name", q.Name),
		attribute.String("query.capital", q.Capital),
		attribute.String("query.region", q.Region),
		attribute.String("query.timezone", q.Timezone),
	))
	defer span.End()

	countries, err := s.all(ctx, span)
	if err != nil {
		return nil, err
	}

	matched := Apply(countries, q.Predicates()...)
	s.logger.Debug("search complete",
		zap.Int("upstream", len(countries)),
		zap.Int("matched", len(matched)),
	)
	return summarize(matched), nil
}

func (s *countryService) all(ctx context.Context, span trace.Span) ([]domain.Country, error) {
	countries, err := s.client.All(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("upstream.count", len(countries)))
	return countries, nil
}

func summarize(countries []domain.Country) []domain.Summary {
	out := make([]domain.Summary, 0, len(countries))
	for _, c := range countries {
		out = append(out, c.Summary())
	}
	return out
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
