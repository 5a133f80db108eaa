package scoring

import (
	"fmt"
)

// Engine scores candidates against positions with one validated configuration.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg     Config
	scorers []Scorer
}

type Option func(*engineOptions)

type engineOptions struct {
	locations   LocationComparator
	credentials CredentialMatcher
}

func WithLocationComparator(c LocationComparator) Option {
	return func(o *engineOptions) {
		if c != nil {
			o.locations = c
		}
	}
}

func WithCredentialMatcher(m CredentialMatcher) Option {
	return func(o *engineOptions) {
		if m != nil {
			o.credentials = m
		}
	}
}

// NewEngine validates cfg and wires the factor scorers.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &engineOptions{
		locations:   NewRegionComparator(DefaultRegions()),
		credentials: NewLadderMatcher(DefaultLadders()),
	}
	for _, opt := range opts {
		opt(o)
	}

	weights := make(Weights, len(cfg.Weights))
	for f, w := range cfg.Weights {
		weights[f] = w
	}
	cfg.Weights = weights

	return &Engine{
		cfg: cfg,
		scorers: []Scorer{
			skillsScorer{},
			experienceScorer{},
			locationScorer{comparator: o.locations},
			compensationScorer{},
			credentialsScorer{matcher: o.credentials},
		},
	}, nil
}

// Score computes the full match for one pair.
func (e *Engine) Score(c Candidate, p Position) MatchScore {
	breakdown := make(Breakdown, len(e.scorers))
	result := MatchScore{
		PositionID:    p.ID,
		PositionTitle: p.Title,
		Company:       p.Company,
		Breakdown:     breakdown,
	}

	for _, s := range e.scorers {
		r := s.Score(c, p)
		breakdown[s.Factor()] = r.Score

		switch s.Factor() {
		case FactorSkills:
			result.MatchedSkills = r.Matched
			result.MissingSkills = r.Missing
		case FactorCredentials:
			result.HardGateFailed = r.GateFailed
			result.MissingCredentials = r.Missing
		}
	}

	result.OverallScore = e.cfg.Overall(breakdown, result.HardGateFailed)
	result.Recommendation = Tier(result.OverallScore)
	result.Insights = GenerateInsights(breakdown, result.MissingSkills, HoldsClearance(c.Credentials))

	return result
}

func (e *Engine) String() string {
	return fmt.Sprintf("engine(penalty=%g, weights=%v)", e.cfg.HardGatePenalty, e.cfg.Weights)
}
