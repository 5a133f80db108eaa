package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/fitrank/internal/pool"
)

var defaultClosedStatuses = []string{"filled", "expired", "closed"}

type closedFilter struct {
	toggle
	statuses []string
}

// NewClosed creates a filter that removes positions which are no longer open.
func NewClosed() Filter {
	return &closedFilter{}
}

func (f *closedFilter) Name() string { return "closed" }

func (f *closedFilter) Validate(cfg *Config) error {
	f.statuses = defaultClosedStatuses
	if cfg != nil && len(cfg.ClosedStatuses) > 0 {
		f.statuses = append([]string(nil), cfg.ClosedStatuses...)
	}
	return nil
}

func (f *closedFilter) Apply(_ context.Context, deps Deps, p *pool.Positions) (*pool.Positions, Step, error) {
	initial := p.Len()

	excluded := p.Exclude(pool.PositionStatusField, f.statuses)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding closed positions",
			zap.Strings("statuses", f.statuses),
			zap.Strings("excluded_positions", excluded),
			zap.Int("positions_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(excluded), Left: p.Len()}, nil
}

func (f *closedFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"statuses": strings.Join(f.statuses, ",")},
	}
}
