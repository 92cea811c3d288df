package service

import (
	"strings"

	"github.com/noah-isme/citizen-portal/internal/models"
)

// ComputeInsights aggregates engagements into demographic and intent
// histograms plus premium-lead suggestions. It never fails: a field that is
// missing or unusable on one record only drops that record from the affected
// histogram.
func ComputeInsights(engagements []models.Engagement) models.InsightsReport {
	report := models.InsightsReport{
		AgeGroups:          make(map[string]int, len(models.AgeBuckets)),
		Jobs:               make(map[string]int),
		Services:           make(map[string]int),
		Questions:          make(map[string]int),
		Desires:            make(map[string]int),
		PremiumSuggestions: []models.PremiumLead{},
	}
	for _, bucket := range models.AgeBuckets {
		report.AgeGroups[bucket] = 0
	}

	leads := newLeadGrouper()
	for _, e := range engagements {
		if bucket, ok := AgeBucket(e.Age); ok {
			report.AgeGroups[bucket]++
		}
		report.Jobs[jobLabel(e.Job)]++
		report.Services[labelOrUnknown(e.Service)]++
		report.Questions[labelOrUnknown(e.QuestionClicked)]++
		for _, desire := range e.Desires {
			report.Desires[desire]++
		}
		leads.add(e.UserID, e.QuestionClicked)
	}

	report.PremiumSuggestions = leads.repeated(2)
	return report
}

// AgeBucket maps an age onto its bucket label. Absent or negative ages have
// no bucket.
func AgeBucket(age *int) (string, bool) {
	if age == nil || *age < 0 {
		return "", false
	}
	switch a := *age; {
	case a < 18:
		return models.AgeUnder18, true
	case a <= 25:
		return models.Age18To25, true
	case a <= 40:
		return models.Age26To40, true
	case a <= 60:
		return models.Age41To60, true
	default:
		return models.AgeOver60, true
	}
}

func jobLabel(job *string) string {
	if job == nil || *job == "" {
		return models.UnknownLabel
	}
	return strings.TrimSpace(*job)
}

func labelOrUnknown(value *string) string {
	if value == nil || *value == "" {
		return models.UnknownLabel
	}
	return *value
}

type leadKey struct {
	user        string
	hasUser     bool
	question    string
	hasQuestion bool
}

// leadGrouper counts (user, question) pairs, remembering first-seen order.
type leadGrouper struct {
	order  []leadKey
	counts map[leadKey]int
}

func newLeadGrouper() *leadGrouper {
	return &leadGrouper{counts: make(map[leadKey]int)}
}

func (g *leadGrouper) add(user, question *string) {
	var key leadKey
	if user != nil {
		key.user, key.hasUser = *user, true
	}
	if question != nil {
		key.question, key.hasQuestion = *question, true
	}
	if _, seen := g.counts[key]; !seen {
		g.order = append(g.order, key)
	}
	g.counts[key]++
}

// repeated returns groups seen at least min times. Anonymous groups are
// counted but never reported.
func (g *leadGrouper) repeated(min int) []models.PremiumLead {
	leads := []models.PremiumLead{}
	for _, key := range g.order {
		count := g.counts[key]
		if count < min || !key.hasUser {
			continue
		}
		lead := models.PremiumLead{User: key.user, Count: count}
		if key.hasQuestion {
			question := key.question
			lead.Question = &question
		}
		leads = append(leads, lead)
	}
	return leads
}
