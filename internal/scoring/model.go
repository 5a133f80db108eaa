// Package scoring scores one candidate against one position.
//
// Every factor scorer is a pure function of its inputs. The Engine combines the
// factors with a validated weight table, applies the hard-gate penalty and
// derives the recommendation tier and insights.
package scoring

// Factor names one independently scored dimension of fit.
type Factor string

const (
	FactorSkills       Factor = "skills"
	FactorExperience   Factor = "experience"
	FactorLocation     Factor = "location"
	FactorCompensation Factor = "compensation"
	FactorCredentials  Factor = "credentials"
)

// Factors returns the fixed factor set in evaluation order.
func Factors() []Factor {
	return []Factor{
		FactorSkills,
		FactorExperience,
		FactorLocation,
		FactorCompensation,
		FactorCredentials,
	}
}

// Recommendation is the coarse tier derived from the overall score.
type Recommendation string

const (
	RecommendationExcellent Recommendation = "excellent"
	RecommendationGood      Recommendation = "good"
	RecommendationFair      Recommendation = "fair"
	RecommendationPoor      Recommendation = "poor"
)

// Candidate is the normalized applicant profile.
type Candidate struct {
	Skills          TokenSet `json:"skills"`
	ExperienceYears float64  `json:"experienceYears"`
	Location        string   `json:"location,omitempty"`
	// MinSalary is nil when the candidate stated no minimum.
	MinSalary   *float64 `json:"minSalary,omitempty"`
	Credentials TokenSet `json:"credentials"`
}

// Position is the normalized opportunity record.
// Skill and credential slices keep the order the position declared them in.
type Position struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Company              string   `json:"company"`
	Location             string   `json:"location"`
	RequiredSkills       []string `json:"requiredSkills"`
	PreferredSkills      []string `json:"preferredSkills"`
	MinExperienceYears   float64  `json:"minExperienceYears"`
	PayMin               *float64 `json:"payMin,omitempty"`
	PayMax               *float64 `json:"payMax,omitempty"`
	RequiredCredentials  []string `json:"requiredCredentials"`
	PreferredCredentials []string `json:"preferredCredentials"`
	Status               string   `json:"status,omitempty"`
	Source               string   `json:"source,omitempty"`
}

// Breakdown maps every factor to its 0-100 sub-score.
type Breakdown map[Factor]int

// MatchScore is the result of scoring one candidate against one position.
type MatchScore struct {
	PositionID         string         `json:"positionId"`
	PositionTitle      string         `json:"positionTitle,omitempty"`
	Company            string         `json:"company,omitempty"`
	OverallScore       int            `json:"overallScore"`
	Breakdown          Breakdown      `json:"breakdown"`
	MatchedSkills      []string       `json:"matchedSkills"`
	MissingSkills      []string       `json:"missingSkills"`
	MissingCredentials []string       `json:"missingCredentials,omitempty"`
	HardGateFailed     bool           `json:"hardGateFailed,omitempty"`
	Recommendation     Recommendation `json:"recommendation"`
	Insights           []string       `json:"insights"`
}

// Amount returns a pointer to v for optional money fields.
func Amount(v float64) *float64 {
	return &v
}
