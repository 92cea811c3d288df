package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

func TestInsightsHandlerReport(t *testing.T) {
	q := "Q1"
	report := &models.InsightsReport{
		AgeGroups:          map[string]int{models.AgeUnder18: 0, models.Age18To25: 1, models.Age26To40: 0, models.Age41To60: 0, models.AgeOver60: 0},
		Jobs:               map[string]int{"Unknown": 1},
		Services:           map[string]int{"Unknown": 1},
		Questions:          map[string]int{"Q1": 1},
		Desires:            map[string]int{},
		PremiumSuggestions: []models.PremiumLead{{User: "A", Question: &q, Count: 2}},
	}
	handler := NewInsightsHandler(&insightsServiceMock{report: report}, &exportServiceMock{})
	c, w := newTestContext(http.MethodGet, "/api/admin/insights", nil)

	handler.Insights(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"age_groups": {"<18":0,"18-25":1,"26-40":0,"41-60":0,"60+":0},
		"jobs": {"Unknown":1},
		"services": {"Unknown":1},
		"questions": {"Q1":1},
		"desires": {},
		"premium_suggestions": [{"user":"A","question":"Q1","count":2}]
	}`, w.Body.String())
}

func TestInsightsHandlerReportStoreFailure(t *testing.T) {
	handler := NewInsightsHandler(&insightsServiceMock{err: appErrors.ErrStoreUnavailable}, &exportServiceMock{})
	c, w := newTestContext(http.MethodGet, "/api/admin/insights", nil)

	handler.Insights(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestInsightsHandlerExportCSV(t *testing.T) {
	payload := []byte("user_id,age,job,desire,question,service,timestamp\n")
	handler := NewInsightsHandler(&insightsServiceMock{}, &exportServiceMock{csv: payload})
	c, w := newTestContext(http.MethodGet, "/api/admin/export_csv", nil)

	handler.ExportCSV(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="engagements.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, payload, w.Body.Bytes())
}

func TestInsightsHandlerExportCSVFailureSendsNoFile(t *testing.T) {
	handler := NewInsightsHandler(&insightsServiceMock{}, &exportServiceMock{err: appErrors.ErrStoreUnavailable})
	c, w := newTestContext(http.MethodGet, "/api/admin/export_csv", nil)

	handler.ExportCSV(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestInsightsHandlerExportPDF(t *testing.T) {
	handler := NewInsightsHandler(&insightsServiceMock{}, &exportServiceMock{pdf: []byte("%PDF-1.3")})
	c, w := newTestContext(http.MethodGet, "/api/admin/export_insights_pdf", nil)

	handler.ExportInsightsPDF(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="insights.pdf"`, w.Header().Get("Content-Disposition"))
}
