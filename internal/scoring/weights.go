package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	weightTolerance = 1e-6

	DefaultHardGatePenalty = 20

	PresetGeneral = "general"
	PresetCDL     = "cdl"
	PresetVeteran = "veteran"
)

var ErrUnknownPreset = errors.New("unknown weight preset")

// Weights assigns a share of the overall score to each factor.
type Weights map[Factor]float64

// Config is the operator-controlled aggregation configuration.
type Config struct {
	Weights         Weights
	HardGatePenalty float64
}

// ConfigError lists every problem found in a configuration.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid scoring config: " + strings.Join(e.Problems, "; ")
}

// Validate rejects negative, non-finite or unknown weights, missing factors,
// a weight sum different from 1.0 and a negative penalty.
func (c Config) Validate() error {
	var problems []string

	known := make(map[Factor]struct{})
	for _, f := range Factors() {
		known[f] = struct{}{}
	}

	names := make([]string, 0, len(c.Weights))
	for f := range c.Weights {
		names = append(names, string(f))
	}
	sort.Strings(names)

	sum := 0.0
	for _, name := range names {
		f := Factor(name)
		w := c.Weights[f]
		if _, ok := known[f]; !ok {
			problems = append(problems, fmt.Sprintf("unknown factor %q", name))
			continue
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			problems = append(problems, fmt.Sprintf("weight of %s is not a finite number", name))
			continue
		}
		if w < 0 {
			problems = append(problems, fmt.Sprintf("weight of %s is negative: %g", name, w))
		}
		sum += w
	}

	for _, f := range Factors() {
		if _, ok := c.Weights[f]; !ok {
			problems = append(problems, fmt.Sprintf("weight of %s is missing", f))
		}
	}

	if math.Abs(sum-1) > weightTolerance {
		problems = append(problems, fmt.Sprintf("weights sum to %g, want 1.0", sum))
	}

	if math.IsNaN(c.HardGatePenalty) || c.HardGatePenalty < 0 {
		problems = append(problems, fmt.Sprintf("hard gate penalty must be non-negative, got %g", c.HardGatePenalty))
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}

// ParseWeights converts a name -> weight table from configuration.
// Names are matched case-insensitively; validation is left to Config.Validate.
func ParseWeights(raw map[string]float64) Weights {
	w := make(Weights, len(raw))
	for name, value := range raw {
		w[Factor(NormalizeToken(name))] = value
	}
	return w
}

// Preset returns a copy of a named weight table.
func Preset(name string) (Weights, error) {
	var w Weights
	switch NormalizeToken(name) {
	case PresetGeneral, "":
		w = Weights{
			FactorSkills:       0.40,
			FactorExperience:   0.20,
			FactorLocation:     0.10,
			FactorCompensation: 0.10,
			FactorCredentials:  0.20,
		}
	case PresetCDL:
		w = Weights{
			FactorCredentials:  0.30,
			FactorExperience:   0.20,
			FactorCompensation: 0.25,
			FactorLocation:     0.20,
			FactorSkills:       0.05,
		}
	case PresetVeteran:
		w = Weights{
			FactorSkills:       0.35,
			FactorCredentials:  0.30,
			FactorExperience:   0.15,
			FactorLocation:     0.10,
			FactorCompensation: 0.10,
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	return w, nil
}

// Presets lists the preset names.
func Presets() []string {
	return []string{PresetGeneral, PresetCDL, PresetVeteran}
}

// DefaultConfig is the general preset with the default penalty.
func DefaultConfig() Config {
	w, _ := Preset(PresetGeneral)
	return Config{Weights: w, HardGatePenalty: DefaultHardGatePenalty}
}

// Overall combines the breakdown into the overall score.
func (c Config) Overall(breakdown Breakdown, gateFailed bool) int {
	raw := 0.0
	for _, f := range Factors() {
		raw += c.Weights[f] * float64(breakdown[f])
	}
	if gateFailed {
		raw -= c.HardGatePenalty
	}
	return clampScore(raw)
}

// Tier maps an overall score onto a recommendation.
func Tier(score int) Recommendation {
	switch {
	case score >= 80:
		return RecommendationExcellent
	case score >= 60:
		return RecommendationGood
	case score >= 40:
		return RecommendationFair
	default:
		return RecommendationPoor
	}
}
