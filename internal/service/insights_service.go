package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

const insightsCacheKey = "insights:report"

type engagementSource interface {
	All(ctx context.Context) ([]models.Engagement, error)
}

// InsightsService loads the engagement set and aggregates it.
type InsightsService struct {
	engagements engagementSource
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewInsightsService constructs an InsightsService. cache and metrics may be nil.
func NewInsightsService(engagements engagementSource, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *InsightsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsService{engagements: engagements, cache: cache, metrics: metrics, logger: logger}
}

// Report returns the aggregated insights. With the cache enabled a report
// may be up to one TTL old.
func (s *InsightsService) Report(ctx context.Context) (*models.InsightsReport, error) {
	report, err := remember(ctx, s.cache, insightsCacheKey, s.compute)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *InsightsService) compute(ctx context.Context) (models.InsightsReport, error) {
	start := time.Now()
	engagements, err := s.engagements.All(ctx)
	s.metrics.ObserveDBQuery("engagements.all", time.Since(start))
	if err != nil {
		return models.InsightsReport{}, appErrors.ErrStoreUnavailable.Because(err, "failed to load engagements")
	}

	start = time.Now()
	report := ComputeInsights(engagements)
	s.metrics.ObserveInsightsCompute(time.Since(start))
	return report, nil
}
