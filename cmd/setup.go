package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fitrank/internal/ai/gemini"
	"github.com/spigell/fitrank/internal/filtering"
	"github.com/spigell/fitrank/internal/logger"
	"github.com/spigell/fitrank/internal/pool"
	"github.com/spigell/fitrank/internal/profile"
	"github.com/spigell/fitrank/internal/scoring"
	"github.com/spigell/fitrank/internal/secrets"
)

// setup builds the logger and the config every command starts with.
// Both failures are fatal.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}

// scoringConfig resolves the weight table. Explicit weights replace the
// profile preset as a whole.
func scoringConfig(config *Config) (scoring.Config, error) {
	weights, err := scoring.Preset(config.Profile)
	if err != nil {
		return scoring.Config{}, fmt.Errorf("%w (known: %s)", err, strings.Join(scoring.Presets(), ", "))
	}
	if len(config.Weights) > 0 {
		weights = scoring.ParseWeights(config.Weights)
	}

	cfg := scoring.Config{Weights: weights, HardGatePenalty: config.HardGatePenalty}
	if err := cfg.Validate(); err != nil {
		return scoring.Config{}, err
	}
	return cfg, nil
}

func newEngine(config *Config) (*scoring.Engine, error) {
	cfg, err := scoringConfig(config)
	if err != nil {
		return nil, err
	}

	var opts []scoring.Option
	if len(config.Regions) > 0 {
		opts = append(opts, scoring.WithLocationComparator(scoring.NewRegionComparator(config.Regions)))
	}
	return scoring.NewEngine(cfg, opts...)
}

func loadCandidate(path string, logger *zap.Logger) (scoring.Candidate, error) {
	raw, err := pool.ReadRecord(path)
	if err != nil {
		return scoring.Candidate{}, err
	}

	candidate, warnings := profile.DecodeCandidate(raw)
	for _, warning := range warnings {
		logger.Warn("candidate field skipped", zap.String("path", path), zap.String("reason", warning))
	}

	logger.Debug("candidate loaded",
		zap.String("kind", string(profile.DetectCandidateKind(raw))),
		zap.Int("skills", candidate.Skills.Len()),
		zap.Int("credentials", candidate.Credentials.Len()),
		zap.Float64("experience_years", candidate.ExperienceYears),
	)
	return candidate, nil
}

func loadPositions(ctx context.Context, path string, config *Config, logger *zap.Logger) (*pool.Positions, error) {
	positions, warnings, err := pool.LoadFile(path)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		logger.Warn("position record", zap.String("path", path), zap.String("reason", warning.String()))
	}
	logger.Info("positions loaded", zap.String("path", path), zap.Int("count", positions.Len()))

	cfg := &filtering.Config{
		Companies:      config.Exclude.Companies,
		ExcludeFile:    config.ExcludeFile,
		ClosedStatuses: config.Exclude.ClosedStatuses,
	}
	steps := filtering.Defaults()
	if err := filtering.DisableAll(steps, config.Exclude.DisabledFilters, "disabled by config"); err != nil {
		return nil, err
	}
	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	filtered, err := filtering.Run(ctx, cfg, filtering.Deps{Logger: logger}, steps, positions)
	if err != nil {
		return nil, fmt.Errorf("filtering positions: %w", err)
	}
	return filtered, nil
}

func newExtractor(ctx context.Context, cfg *AIConfig, base *zap.Logger) (*gemini.Extractor, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("ai is disabled: set ai.enabled to true")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := base.With(
		zap.String(logger.FieldProvider, "gemini"),
		zap.String(logger.FieldModel, cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	extractor := gemini.NewExtractor(generator, logger.WithCommonFields(base, "gemini", generator.Model()), cfg.Gemini.MaxLogLength)
	extractor.SetInstructions(cfg.Instructions)
	return extractor, nil
}

// rankingFlags maps config keys to the flags shared by rank and serve.
var rankingFlags = map[string]string{
	"ranking.min-score":        "min-score",
	"ranking.limit":            "limit",
	"ranking.workers":          "workers",
	"ranking.exclude-gated":    "exclude-gated",
	"profile":                  "profile",
	"exclude-file":             "exclude-file",
	"exclude.disabled-filters": "disable-filter",
}

// bindFlags binds the command's flags at run time, so commands sharing a key
// do not override each other's bindings.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := viper.BindPFlag(key, flag); err != nil {
				log.Fatalf("binding flag %s: %v", name, err)
			}
		}
	}
}

func addRankingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("min-score", 0, "drop matches scoring below this value")
	cmd.Flags().Int("limit", 20, "keep at most this many matches, 0 keeps all")
	cmd.Flags().Int("workers", 0, "concurrent scorers, 0 uses one per CPU")
	cmd.Flags().String("profile", "general", "weight preset: "+strings.Join(scoring.Presets(), ", "))
	cmd.Flags().Bool("exclude-gated", false, "drop matches that miss a required credential")
	cmd.Flags().StringP("exclude-file", "e", "", "file with positions to exclude. Default is unset.")
	cmd.Flags().StringSlice("disable-filter", nil, "pool filters to skip: closed, companies, exclude_file")
}
