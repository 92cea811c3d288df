package handler

import (
	"context"
	"time"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

type catalogServiceMock struct {
	services    []models.Service
	byID        map[string]*models.Service
	upserted    []models.Service
	deleted     []string
	err         error
	deleteCalls int
}

func (m *catalogServiceMock) List(context.Context) ([]models.Service, error) {
	return m.services, m.err
}

func (m *catalogServiceMock) Get(_ context.Context, id string) (*models.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byID[id], nil
}

func (m *catalogServiceMock) Upsert(_ context.Context, svc models.Service) error {
	if svc.ID == "" {
		return appErrors.ErrValidation.WithMessage("id required")
	}
	m.upserted = append(m.upserted, svc)
	return m.err
}

func (m *catalogServiceMock) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	m.deleted = append(m.deleted, id)
	return m.err
}

type engagementServiceMock struct {
	logged []models.LogEngagementRequest
	recent []models.EngagementView
	err    error
}

func (m *engagementServiceMock) Log(_ context.Context, req models.LogEngagementRequest) (*models.Engagement, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.logged = append(m.logged, req)
	e := models.NewEngagement(req, time.Now())
	return &e, nil
}

func (m *engagementServiceMock) Recent(context.Context) ([]models.EngagementView, error) {
	return m.recent, m.err
}

type sessionServiceMock struct {
	password   string
	loggedOut  []string
	loginCalls int
	err        error
}

func (m *sessionServiceMock) Login(_ context.Context, req models.LoginRequest) (string, *models.Session, error) {
	m.loginCalls++
	if m.err != nil {
		return "", nil, m.err
	}
	if req.Username == "" || req.Password == "" {
		return "", nil, appErrors.ErrValidation.WithMessage("username and password are required")
	}
	if req.Username != "admin" || req.Password != m.password {
		return "", nil, appErrors.ErrInvalidCredentials
	}
	now := time.Now()
	return "signed-token", &models.Session{ID: "s1", Username: "admin", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}, nil
}

func (m *sessionServiceMock) Logout(_ context.Context, id string) error {
	m.loggedOut = append(m.loggedOut, id)
	return nil
}

func (m *sessionServiceMock) TTL() time.Duration { return time.Hour }

type insightsServiceMock struct {
	report *models.InsightsReport
	err    error
}

func (m *insightsServiceMock) Report(context.Context) (*models.InsightsReport, error) {
	return m.report, m.err
}

type exportServiceMock struct {
	csv []byte
	pdf []byte
	err error
}

func (m *exportServiceMock) EngagementsCSV(context.Context) ([]byte, error) {
	return m.csv, m.err
}

func (m *exportServiceMock) InsightsPDF(context.Context) ([]byte, error) {
	return m.pdf, m.err
}
