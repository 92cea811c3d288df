package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
	"github.com/noah-isme/citizen-portal/pkg/export"
)

// EngagementCSVHeaders is the column order of the engagement export.
var EngagementCSVHeaders = []string{"user_id", "age", "job", "desire", "question", "service", "timestamp"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(report export.Report) ([]byte, error)
}

type insightsProvider interface {
	Report(ctx context.Context) (*models.InsightsReport, error)
}

// ExportService renders engagement data into downloadable files. Output is
// built fully in memory so a failure never yields a truncated file.
type ExportService struct {
	engagements engagementSource
	insights    insightsProvider
	csv         csvRenderer
	pdf         pdfRenderer
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to
// the defaults from pkg/export.
func NewExportService(engagements engagementSource, insights insightsProvider, metrics *MetricsService, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		engagements: engagements,
		insights:    insights,
		csv:         csv,
		pdf:         pdf,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// EngagementsCSV renders every engagement, oldest first, as CSV.
func (s *ExportService) EngagementsCSV(ctx context.Context) ([]byte, error) {
	start := time.Now()
	engagements, err := s.engagements.All(ctx)
	s.metrics.ObserveDBQuery("engagements.all", time.Since(start))
	if err != nil {
		return nil, appErrors.ErrStoreUnavailable.Because(err, "failed to load engagements")
	}

	payload, err := s.csv.Render(EngagementDataset(engagements))
	if err != nil {
		return nil, appErrors.ErrInternal.Because(err, "failed to render csv")
	}
	s.metrics.RecordExport("csv")
	s.logger.Info("engagement csv exported", zap.Int("rows", len(engagements)))
	return payload, nil
}

// EngagementDataset maps engagements onto the export columns. Absent values
// become empty strings and desires are joined with a comma.
func EngagementDataset(engagements []models.Engagement) export.Dataset {
	data := export.Dataset{Headers: EngagementCSVHeaders}
	for _, e := range engagements {
		age := ""
		if e.Age != nil {
			age = strconv.Itoa(*e.Age)
		}
		data.Append(
			deref(e.UserID),
			age,
			deref(e.Job),
			strings.Join(e.Desires, ","),
			deref(e.QuestionClicked),
			deref(e.Service),
			models.FormatTimestamp(e.Timestamp),
		)
	}
	return data
}

// InsightsPDF renders the current insights report as a PDF.
func (s *ExportService) InsightsPDF(ctx context.Context) ([]byte, error) {
	report, err := s.insights.Report(ctx)
	if err != nil {
		return nil, err
	}

	doc := export.Report{
		Title:    "Citizen engagement insights",
		Subtitle: "Generated " + s.now().UTC().Format(time.RFC1123),
		Sections: []export.Section{
			{Heading: "Age groups", Data: ageGroupDataset(report.AgeGroups)},
			{Heading: "Jobs", Data: countDataset("Job", report.Jobs)},
			{Heading: "Services", Data: countDataset("Service", report.Services)},
			{Heading: "Questions", Data: countDataset("Question", report.Questions)},
			{Heading: "Desires", Data: countDataset("Desire", report.Desires)},
			{Heading: "Premium suggestions", Data: leadDataset(report.PremiumSuggestions)},
		},
	}

	payload, err := s.pdf.Render(doc)
	if err != nil {
		return nil, appErrors.ErrInternal.Because(err, "failed to render pdf")
	}
	s.metrics.RecordExport("pdf")
	return payload, nil
}

func ageGroupDataset(groups map[string]int) export.Dataset {
	data := export.Dataset{Headers: []string{"Age group", "Count"}}
	for _, bucket := range models.AgeBuckets {
		data.Append(bucket, strconv.Itoa(groups[bucket]))
	}
	return data
}

// countDataset orders rows by descending count, then label.
func countDataset(label string, counts map[string]int) export.Dataset {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	data := export.Dataset{Headers: []string{label, "Count"}}
	for _, k := range keys {
		data.Append(k, strconv.Itoa(counts[k]))
	}
	return data
}

func leadDataset(leads []models.PremiumLead) export.Dataset {
	data := export.Dataset{Headers: []string{"User", "Question", "Count"}}
	for _, lead := range leads {
		data.Append(lead.User, deref(lead.Question), strconv.Itoa(lead.Count))
	}
	return data
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
