package service

import (
	"go-warehouse-ws/internal/analytics"
	"go-warehouse-ws/internal/config"
	"go-warehouse-ws/internal/selection"
)

// Thresholds are caller-supplied per request; nil fields fall back to the
// configured defaults.
type ThresholdOverride struct {
	Understock *int
	Overstock  *int
}

type AnalyticsService interface {
	Summary(criteria selection.Criteria) (analytics.Summary, error)
	Groups(dimension string, criteria selection.Criteria) ([]analytics.GroupMetric, error)
	Issues(criteria selection.Criteria, override ThresholdOverride) (*analytics.IssueReport, error)
	Balance(dimension string, criteria selection.Criteria) ([]analytics.BalanceStat, error)
}

type analyticsService struct {
	catalogService CatalogService
	defaults       config.StockConfig
}

func NewAnalyticsService(catalogService CatalogService, defaults config.StockConfig) AnalyticsService {
	return &analyticsService{
		catalogService: catalogService,
		defaults:       defaults,
	}
}

func (s *analyticsService) Summary(criteria selection.Criteria) (analytics.Summary, error) {
	locations, err := s.catalogService.Select(criteria)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(locations), nil
}

func (s *analyticsService) Groups(dimension string, criteria selection.Criteria) ([]analytics.GroupMetric, error) {
	dim, err := analytics.ParseDimension(dimension)
	if err != nil {
		return nil, err
	}
	locations, err := s.catalogService.Select(criteria)
	if err != nil {
		return nil, err
	}
	return analytics.GroupBy(locations, dim)
}

func (s *analyticsService) Issues(criteria selection.Criteria, override ThresholdOverride) (*analytics.IssueReport, error) {
	understock := s.defaults.UnderstockThreshold
	if override.Understock != nil {
		understock = *override.Understock
	}
	overstock := s.defaults.OverstockThreshold
	if override.Overstock != nil {
		overstock = *override.Overstock
	}

	locations, err := s.catalogService.Select(criteria)
	if err != nil {
		return nil, err
	}
	return analytics.ClassifyIssues(locations, understock, overstock)
}

func (s *analyticsService) Balance(dimension string, criteria selection.Criteria) ([]analytics.BalanceStat, error) {
	dim, err := analytics.ParseDimension(dimension)
	if err != nil {
		return nil, err
	}
	locations, err := s.catalogService.Select(criteria)
	if err != nil {
		return nil, err
	}
	return analytics.BalanceStatistics(locations, dim)
}
