package analysis

import "strings"

// Classification is the category assigned to an analyzed message.
type Classification string

const (
	Urgent        Classification = "Urgent"
	Request       Classification = "Request"
	FollowUp      Classification = "Follow-Up"
	Reminder      Classification = "Reminder"
	Informational Classification = "Informational"
)

// classificationRules are checked in priority order; the first match wins.
var classificationRules = []struct {
	class    Classification
	keywords []string
}{
	{Urgent, []string{"urgent"}},
	{Request, []string{"request"}},
	{FollowUp, []string{"follow-up", "follow up", "followup"}},
	{Reminder, []string{"reminder"}},
}

// NormalizeClassification maps a free-text label onto one of the known classifications.
// Matching is case-insensitive and substring based. Anything unrecognised is Informational.
func NormalizeClassification(label string) Classification {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return Informational
	}
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(l, kw) {
				return rule.class
			}
		}
	}
	return Informational
}
