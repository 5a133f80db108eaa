package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fitrank/internal/scoring"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config and its weight table",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, map[string]string{"profile": "profile"})
	},
	Run: func(_ *cobra.Command, _ []string) {
		validate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("profile", "general", "weight preset to validate")
}

func validate() {
	logger, config := setup()

	cfg, err := scoringConfig(config)
	if err != nil {
		var configErr *scoring.ConfigError
		if errors.As(err, &configErr) {
			logger.Fatal("invalid weights", zap.Strings("problems", configErr.Problems))
		}
		logger.Fatal("invalid config", zap.Error(err))
	}

	factors := make([]string, 0, len(cfg.Weights))
	for factor := range cfg.Weights {
		factors = append(factors, string(factor))
	}
	sort.Strings(factors)

	fields := make([]zap.Field, 0, len(factors)+1)
	for _, factor := range factors {
		fields = append(fields, zap.Float64(factor, cfg.Weights[scoring.Factor(factor)]))
	}
	fields = append(fields, zap.Float64("hard_gate_penalty", cfg.HardGatePenalty))

	logger.Info("config is valid", fields...)
	fmt.Println("ok")
}
