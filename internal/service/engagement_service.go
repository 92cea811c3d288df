package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

type engagementStore interface {
	Insert(ctx context.Context, e *models.Engagement) error
	Recent(ctx context.Context, limit int) ([]models.Engagement, error)
}

// EngagementService records citizen interactions and lists the newest ones.
type EngagementService struct {
	repo        engagementStore
	metrics     *MetricsService
	logger      *zap.Logger
	recentLimit int
	now         func() time.Time
}

// NewEngagementService constructs an EngagementService.
func NewEngagementService(repo engagementStore, metrics *MetricsService, logger *zap.Logger, recentLimit int) *EngagementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recentLimit <= 0 {
		recentLimit = 500
	}
	return &EngagementService{repo: repo, metrics: metrics, logger: logger, recentLimit: recentLimit, now: time.Now}
}

// Log normalises the payload and stores it with a server-side timestamp.
func (s *EngagementService) Log(ctx context.Context, req models.LogEngagementRequest) (*models.Engagement, error) {
	engagement := models.NewEngagement(req, s.now().UTC())

	start := time.Now()
	err := s.repo.Insert(ctx, &engagement)
	s.metrics.ObserveDBQuery("engagements.insert", time.Since(start))
	if err != nil {
		return nil, appErrors.ErrStoreUnavailable.Because(err, "failed to record engagement")
	}

	s.metrics.IncEngagementsLogged()
	return &engagement, nil
}

// Recent returns the newest engagements, newest first, in their wire shape.
func (s *EngagementService) Recent(ctx context.Context) ([]models.EngagementView, error) {
	start := time.Now()
	engagements, err := s.repo.Recent(ctx, s.recentLimit)
	s.metrics.ObserveDBQuery("engagements.recent", time.Since(start))
	if err != nil {
		return nil, appErrors.ErrStoreUnavailable.Because(err, "failed to load engagements")
	}

	views := make([]models.EngagementView, 0, len(engagements))
	for _, e := range engagements {
		views = append(views, e.View())
	}
	return views, nil
}
