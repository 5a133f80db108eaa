// Package ranking scores one candidate against a position pool and returns
// the best matches in a deterministic order.
package ranking

import (
	"context"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/fitrank/internal/logger"
	"github.com/spigell/fitrank/internal/scoring"
)

// Scorer produces the match of one pair. *scoring.Engine satisfies it.
type Scorer interface {
	Score(c scoring.Candidate, p scoring.Position) scoring.MatchScore
}

// Observer receives the outcome of every ranking call.
type Observer interface {
	ObserveRanking(took time.Duration, pool, matches int, err error)
}

type Ranker struct {
	scorer   Scorer
	workers  int
	logger   *zap.Logger
	observer Observer
}

type Option func(*Ranker)

// WithWorkers bounds the number of concurrently scored positions.
// Values below one keep the default of one worker per CPU.
func WithWorkers(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(r *Ranker) {
		r.observer = o
	}
}

func New(scorer Scorer, opts ...Option) *Ranker {
	r := &Ranker{
		scorer:  scorer,
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Ranker) Workers() int {
	return r.workers
}

// Rank scores every position, drops matches below minScore, sorts by score
// descending and position ID ascending, and keeps at most limit entries.
// A limit of zero or less keeps all entries.
//
// An empty pool or no surviving match yields an empty slice and no error.
// A cancelled context aborts scoring and returns the context error.
func (r *Ranker) Rank(ctx context.Context, c scoring.Candidate, positions []scoring.Position, minScore, limit int) ([]scoring.MatchScore, error) {
	start := time.Now()

	matches, err := r.rank(ctx, c, positions, minScore, limit)

	took := time.Since(start)
	if r.observer != nil {
		r.observer.ObserveRanking(took, len(positions), len(matches), err)
	}

	fields := append(logger.RankingFields(len(positions), len(matches), minScore, limit), zap.Duration("took", took))
	if err != nil {
		r.logger.Debug("ranking aborted", append(fields, zap.Error(err))...)
		return nil, err
	}
	r.logger.Debug("ranking finished", fields...)
	for _, m := range matches {
		r.logger.Debug("match", logger.MatchFields(m.PositionID, m.Company, m.OverallScore, string(m.Recommendation))...)
	}

	return matches, nil
}

func (r *Ranker) rank(ctx context.Context, c scoring.Candidate, positions []scoring.Position, minScore, limit int) ([]scoring.MatchScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return []scoring.MatchScore{}, nil
	}

	scored := make([]scoring.MatchScore, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range positions {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = r.scorer.Score(c, positions[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Select(scored, minScore, limit), nil
}

// Select filters, orders and truncates already scored matches.
// It sorts a copy and leaves the input untouched.
func Select(scored []scoring.MatchScore, minScore, limit int) []scoring.MatchScore {
	out := make([]scoring.MatchScore, 0, len(scored))
	for _, m := range scored {
		if m.OverallScore < minScore {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OverallScore != out[j].OverallScore {
			return out[i].OverallScore > out[j].OverallScore
		}
		return out[i].PositionID < out[j].PositionID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
