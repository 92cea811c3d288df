package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

type serviceStore interface {
	List(ctx context.Context) ([]models.Service, error)
	FindByID(ctx context.Context, id string) (*models.Service, error)
	Upsert(ctx context.Context, svc models.Service) error
	Delete(ctx context.Context, id string) error
}

// CatalogService manages the public service catalog.
type CatalogService struct {
	repo    serviceStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo serviceStore, metrics *MetricsService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, metrics: metrics, logger: logger}
}

// List returns every service.
func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	start := time.Now()
	services, err := s.repo.List(ctx)
	s.metrics.ObserveDBQuery("services.list", time.Since(start))
	if err != nil {
		return nil, storeError(err, "failed to list services")
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

// Get returns the service or nil when it does not exist.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load service")
	}
	return svc, nil
}

// Upsert creates or fully replaces the service keyed by its id.
func (s *CatalogService) Upsert(ctx context.Context, svc models.Service) error {
	svc = svc.Sanitized()
	if strings.TrimSpace(svc.ID) == "" {
		return appErrors.ErrValidation.WithMessage("id required")
	}
	if err := s.repo.Upsert(ctx, svc); err != nil {
		return storeError(err, "failed to save service")
	}
	s.metrics.RecordCatalogChange("upsert")
	s.logger.Info("service saved", zap.String("service_id", svc.ID))
	return nil
}

// Delete removes the service. Deleting an unknown id succeeds.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "failed to delete service")
	}
	s.metrics.RecordCatalogChange("delete")
	s.logger.Info("service deleted", zap.String("service_id", id))
	return nil
}

func storeError(err error, message string) error {
	return appErrors.ErrStoreUnavailable.Because(err, message)
}
