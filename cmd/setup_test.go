package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/fitrank/internal/scoring"
)

func TestScoringConfig(t *testing.T) {
	t.Parallel()

	cfg, err := scoringConfig(&Config{Profile: "CDL", HardGatePenalty: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Weights[scoring.FactorCredentials] != 0.30 {
		t.Fatalf("expected cdl preset, got %v", cfg.Weights)
	}

	cfg, err = scoringConfig(&Config{
		Profile:         "general",
		HardGatePenalty: 10,
		Weights:         map[string]float64{"skills": 0.5, "experience": 0.2, "location": 0.1, "compensation": 0.1, "credentials": 0.1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Weights[scoring.FactorSkills] != 0.5 || cfg.HardGatePenalty != 10 {
		t.Fatalf("expected explicit weights to replace the preset, got %+v", cfg)
	}
}

func TestScoringConfigErrors(t *testing.T) {
	t.Parallel()

	if _, err := scoringConfig(&Config{Profile: "astronaut"}); !errors.Is(err, scoring.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}

	_, err := scoringConfig(&Config{Weights: map[string]float64{"skills": 0.9}})
	var configErr *scoring.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *scoring.ConfigError, got %v", err)
	}
	if len(configErr.Problems) < 2 {
		t.Fatalf("expected every problem to be listed, got %v", configErr.Problems)
	}
}

func TestNewEngineWithRegions(t *testing.T) {
	t.Parallel()

	engine, err := newEngine(&Config{
		Profile:         "general",
		HardGatePenalty: 20,
		Regions:         map[string][]string{"cascadia": {"wa", "or"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	match := engine.Score(
		scoring.Candidate{Location: "Seattle, WA"},
		scoring.Position{ID: "p", Location: "Portland, OR"},
	)
	if match.Breakdown[scoring.FactorLocation] != scoring.LocationSameRegion.Score() {
		t.Fatalf("expected custom region to apply, got %d", match.Breakdown[scoring.FactorLocation])
	}
}

func TestLoadPositionsDisabledFilters(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "positions.json")
	data := `[{"id": "open", "status": "active"}, {"id": "gone", "status": "filled"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write pool: %v", err)
	}

	tests := []struct {
		name     string
		disabled []string
		want     int
		wantErr  string
	}{
		{name: "defaults", want: 1},
		{name: "closed disabled", disabled: []string{"closed"}, want: 2},
		{name: "unknown filter", disabled: []string{"applied_history"}, wantErr: "applied_history"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, observed := observer.New(zapcore.DebugLevel)
			config := &Config{Exclude: &ExcludeConfig{DisabledFilters: tt.disabled}}

			positions, err := loadPositions(context.Background(), path, config, zap.New(core))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadPositions returned error: %v", err)
			}
			if positions.Len() != tt.want {
				t.Fatalf("expected %d positions, got %d", tt.want, positions.Len())
			}
			if got := observed.FilterMessage("filter").Len(); got != 3 {
				t.Fatalf("expected a status entry per filter, got %d", got)
			}
		})
	}
}
