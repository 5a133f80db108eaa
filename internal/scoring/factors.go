package scoring

import (
	"math"
)

const preferredSkillsBonus = 10

// FactorResult is the sub-score of one factor plus the detail that explains it.
type FactorResult struct {
	Score int
	// Matched and Missing follow the position's declared order.
	Matched    []string
	Missing    []string
	GateFailed bool
}

// Scorer computes one factor for a candidate and position pair.
type Scorer interface {
	Factor() Factor
	Score(c Candidate, p Position) FactorResult
}

type skillsScorer struct{}

func (skillsScorer) Factor() Factor { return FactorSkills }

func (skillsScorer) Score(c Candidate, p Position) FactorResult {
	required := uniqueTokens(p.RequiredSkills)
	matched := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, skill := range required {
		if c.Skills.Has(skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	score := 100 * float64(len(matched)) / float64(max(len(required), 1))

	preferred := uniqueTokens(p.PreferredSkills)
	if len(preferred) > 0 {
		hits := 0
		for _, skill := range preferred {
			if c.Skills.Has(skill) {
				hits++
			}
		}
		score += preferredSkillsBonus * float64(hits) / float64(len(preferred))
	}

	return FactorResult{
		Score:   clampScore(score),
		Matched: matched,
		Missing: missing,
	}
}

type experienceScorer struct{}

func (experienceScorer) Factor() Factor { return FactorExperience }

func (experienceScorer) Score(c Candidate, p Position) FactorResult {
	years := nonNegative(c.ExperienceYears)
	required := nonNegative(p.MinExperienceYears)
	if years >= required {
		return FactorResult{Score: 100}
	}

	return FactorResult{Score: clampScore(100 * years / math.Max(required, 1))}
}

type locationScorer struct {
	comparator LocationComparator
}

func (locationScorer) Factor() Factor { return FactorLocation }

func (s locationScorer) Score(c Candidate, p Position) FactorResult {
	return FactorResult{Score: s.comparator.Compare(c.Location, p.Location).Score()}
}

const neutralScore = 50

type compensationScorer struct{}

func (compensationScorer) Factor() Factor { return FactorCompensation }

func (compensationScorer) Score(c Candidate, p Position) FactorResult {
	if c.MinSalary == nil || p.PayMin == nil {
		return FactorResult{Score: neutralScore}
	}

	want := nonNegative(*c.MinSalary)
	offered := nonNegative(*p.PayMin)
	if offered >= want {
		return FactorResult{Score: 100}
	}

	return FactorResult{Score: clampScore(100 * offered / want)}
}

type credentialsScorer struct {
	matcher CredentialMatcher
}

func (credentialsScorer) Factor() Factor { return FactorCredentials }

func (s credentialsScorer) Score(c Candidate, p Position) FactorResult {
	required := uniqueTokens(p.RequiredCredentials)
	requiredSet := NewTokenSet(required...)

	all := append([]string{}, required...)
	for _, token := range uniqueTokens(p.PreferredCredentials) {
		if !requiredSet.Has(token) {
			all = append(all, token)
		}
	}
	if len(all) == 0 {
		return FactorResult{Score: 100}
	}

	result := FactorResult{}
	for _, token := range all {
		if s.matcher.Satisfies(c.Credentials, token) {
			result.Matched = append(result.Matched, token)
			continue
		}
		result.Missing = append(result.Missing, token)
		if requiredSet.Has(token) {
			result.GateFailed = true
		}
	}

	if result.GateFailed {
		return result
	}

	result.Score = clampScore(100 * float64(len(result.Matched)) / float64(len(all)))
	return result
}

// uniqueTokens normalizes tokens keeping the first occurrence order.
func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = NormalizeToken(token)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Round(v)
	switch {
	case r < 0:
		return 0
	case r > 100:
		return 100
	}
	return int(r)
}
