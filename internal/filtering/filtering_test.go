package filtering

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/fitrank/internal/pool"
	"github.com/spigell/fitrank/internal/scoring"
)

func testPool() *pool.Positions {
	return pool.New(
		scoring.Position{ID: "1", Company: "Acme"},
		scoring.Position{ID: "2", Company: "Haulers", Status: "filled"},
		scoring.Position{ID: "3", Company: "Widgets"},
		scoring.Position{ID: "4", Company: "acme", Status: "open"},
		scoring.Position{ID: "5", Company: "Freight", Status: "expired"},
	)
}

func ids(p *pool.Positions) []string {
	out := make([]string, 0, p.Len())
	for _, position := range p.Items {
		out = append(out, position.ID)
	}
	return out
}

func TestRunAppliesFiltersInOrder(t *testing.T) {
	excludePath := filepath.Join(t.TempDir(), "excluded.json")
	if err := pool.New(scoring.Position{ID: "3"}).ToExcluded().ToFile(excludePath); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	core, logs := observer.New(zapcore.InfoLevel)
	cfg := &Config{Companies: []string{"ACME"}, ExcludeFile: excludePath}

	left, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Defaults(), testPool())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if diff := cmp.Diff([]string{}, ids(left)); diff != "" {
		t.Fatalf("unexpected pool (-want +got):\n%s", diff)
	}

	steps := logs.FilterMessage("filter step").All()
	if len(steps) != 3 {
		t.Fatalf("expected 3 filter step logs, got %d", len(steps))
	}
	if got := steps[0].ContextMap()["dropped"]; got != int64(2) {
		t.Fatalf("expected closed filter to drop 2, got %v", got)
	}
}

func TestRunSkipsDisabledFilters(t *testing.T) {
	steps := Defaults()
	if !DisableByName(steps, "closed", "keep everything") {
		t.Fatalf("expected the closed filter to be found")
	}

	left, err := Run(context.Background(), &Config{}, Deps{}, steps, testPool())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if left.Len() != 5 {
		t.Fatalf("expected full pool, got %v", ids(left))
	}

	statuses := Describe(steps)
	if statuses[0].Enabled || statuses[0].Reason != "keep everything" {
		t.Fatalf("unexpected closed status %+v", statuses[0])
	}
}

func TestClosedFilterCustomStatuses(t *testing.T) {
	left, err := Run(context.Background(), &Config{ClosedStatuses: []string{"Open"}}, Deps{}, []Filter{NewClosed()}, testPool())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "2", "3", "5"}, ids(left)); diff != "" {
		t.Fatalf("unexpected pool (-want +got):\n%s", diff)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, &Config{}, Deps{}, Defaults(), testPool()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExcludeFileFilterBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Run(context.Background(), &Config{ExcludeFile: path}, Deps{}, []Filter{NewExcludeFile()}, testPool()); err == nil {
		t.Fatalf("expected error for broken exclude file")
	}
}

func TestDropGated(t *testing.T) {
	matches := []scoring.MatchScore{
		{PositionID: "a", OverallScore: 80},
		{PositionID: "b", OverallScore: 30, HardGateFailed: true},
		{PositionID: "c", OverallScore: 60},
	}

	kept, dropped := DropGated(matches)
	if dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", dropped)
	}
	if len(kept) != 2 || kept[0].PositionID != "a" || kept[1].PositionID != "c" {
		t.Fatalf("unexpected kept matches %+v", kept)
	}

	empty, _ := DropGated(nil)
	if empty == nil {
		t.Fatalf("expected non-nil empty slice")
	}
}

func TestDisableAll(t *testing.T) {
	t.Parallel()

	steps := Defaults()
	if err := DisableAll(steps, []string{" companies ", ""}, "disabled by config"); err != nil {
		t.Fatalf("DisableAll returned error: %v", err)
	}
	for _, status := range Describe(steps) {
		if status.Enabled == (status.Name == "companies") {
			t.Fatalf("unexpected status %+v", status)
		}
	}

	err := DisableAll(Defaults(), []string{"closed", "ai_fit"}, "disabled by config")
	if err == nil || !strings.Contains(err.Error(), "ai_fit") {
		t.Fatalf("expected an unknown filter error, got %v", err)
	}
}
