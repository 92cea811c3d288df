package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

func TestInsightsServiceReport(t *testing.T) {
	repo := &fakeEngagementRepo{engagements: []models.Engagement{
		{UserID: strPtr("A"), Age: intPtr(30), QuestionClicked: strPtr("Q1")},
		{UserID: strPtr("A"), Age: intPtr(31), QuestionClicked: strPtr("Q1")},
	}}
	svc := NewInsightsService(repo, nil, NewMetricsService(), nil)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.AgeGroups[models.Age26To40])
	require.Len(t, report.PremiumSuggestions, 1)
	assert.Equal(t, "A", report.PremiumSuggestions[0].User)
}

func TestInsightsServiceStoreFailure(t *testing.T) {
	repo := &fakeEngagementRepo{err: errors.New("connection refused")}
	svc := NewInsightsService(repo, nil, nil, nil)

	report, err := svc.Report(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, appErrors.ErrStoreUnavailable)
}

func TestInsightsServiceServesFromCache(t *testing.T) {
	repo := &fakeEngagementRepo{engagements: []models.Engagement{{Job: strPtr("Clerk")}}}
	cacheRepo := newFakeCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewInsightsService(repo, cache, nil, nil)

	first, err := svc.Report(context.Background())
	require.NoError(t, err)
	second, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.allCalls)
	assert.Equal(t, 1, cacheRepo.sets)
	assert.Equal(t, first.Jobs, second.Jobs)
}

func TestInsightsServiceIgnoresCacheFailures(t *testing.T) {
	repo := &fakeEngagementRepo{engagements: []models.Engagement{{Job: strPtr("Clerk")}}}
	cacheRepo := newFakeCacheRepo()
	cacheRepo.getErr = errors.New("redis down")
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewInsightsService(repo, cache, nil, nil)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Jobs["Clerk"])
	assert.Equal(t, 1, repo.allCalls)
}
