package scoring

import (
	"fmt"
	"strings"
)

const (
	maxInsights        = 4
	missingSkillsShown = 3

	InsightClearance       = "security clearance adds market value"
	InsightStrongSkills    = "strong skills alignment"
	InsightLowExperience   = "below required experience threshold"
	InsightLowCompensation = "pay may not meet expectations"
)

type insightRule func(b Breakdown, missingSkills []string, holdsClearance bool) (string, bool)

// Rules run in priority order.
var insightRules = []insightRule{
	func(b Breakdown, _ []string, holdsClearance bool) (string, bool) {
		return InsightClearance, holdsClearance && b[FactorCredentials] >= 90
	},
	func(b Breakdown, _ []string, _ bool) (string, bool) {
		return InsightStrongSkills, b[FactorSkills] >= 90
	},
	func(b Breakdown, missing []string, _ bool) (string, bool) {
		if len(missing) == 0 || b[FactorSkills] >= 50 {
			return "", false
		}
		shown := missing[:min(len(missing), missingSkillsShown)]
		return fmt.Sprintf("missing %d required skills: %s", len(missing), strings.Join(shown, ", ")), true
	},
	func(b Breakdown, _ []string, _ bool) (string, bool) {
		return InsightLowExperience, b[FactorExperience] < 50
	},
	func(b Breakdown, _ []string, _ bool) (string, bool) {
		return InsightLowCompensation, b[FactorCompensation] < 40
	},
}

// GenerateInsights returns at most four explanations, most important first.
func GenerateInsights(b Breakdown, missingSkills []string, holdsClearance bool) []string {
	insights := make([]string, 0, maxInsights)
	for _, rule := range insightRules {
		if len(insights) == maxInsights {
			break
		}
		if text, ok := rule(b, missingSkills, holdsClearance); ok {
			insights = append(insights, text)
		}
	}
	return insights
}
