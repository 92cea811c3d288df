package models

// Age bucket labels in display order.
const (
	AgeUnder18 = "<18"
	Age18To25  = "18-25"
	Age26To40  = "26-40"
	Age41To60  = "41-60"
	AgeOver60  = "60+"
)

// AgeBuckets lists the buckets in ascending order.
var AgeBuckets = []string{AgeUnder18, Age18To25, Age26To40, Age41To60, AgeOver60}

// UnknownLabel replaces absent job, service and question values.
const UnknownLabel = "Unknown"

// InsightsReport is the aggregated view over all engagements.
type InsightsReport struct {
	AgeGroups          map[string]int `json:"age_groups"`
	Jobs               map[string]int `json:"jobs"`
	Services           map[string]int `json:"services"`
	Questions          map[string]int `json:"questions"`
	Desires            map[string]int `json:"desires"`
	PremiumSuggestions []PremiumLead  `json:"premium_suggestions"`
}

// PremiumLead is a user who asked the same question repeatedly.
type PremiumLead struct {
	User     string  `json:"user"`
	Question *string `json:"question"`
	Count    int     `json:"count"`
}
