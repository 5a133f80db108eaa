package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fitrank/internal/output"
	"github.com/spigell/fitrank/internal/profile"
	"github.com/spigell/fitrank/internal/scoring"
)

type extractResult struct {
	Record    map[string]any    `json:"record"`
	Candidate scoring.Candidate `json:"candidate"`
	Warnings  []string          `json:"warnings,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a candidate record from resume text with Gemini",
	Run: func(cmd *cobra.Command, _ []string) {
		extract(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("resume", "r", "", "plain text resume file")
	extractCmd.MarkFlagRequired("resume")
}

func extract(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	extractor, err := newExtractor(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the ai extractor", zap.Error(err))
	}

	path := cmd.Flag("resume").Value.String()
	text, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading the resume", zap.String("path", path), zap.Error(err))
	}

	extraction, err := extractor.Extract(ctx, string(text))
	if err != nil {
		logger.Fatal("extracting the candidate", zap.Error(err))
	}

	candidate, warnings := profile.DecodeCandidate(extraction.Record)
	result := extractResult{Record: extraction.Record, Candidate: candidate, Warnings: warnings}

	if err := output.NewPrinter(os.Stdout, false).JSON(result); err != nil {
		logger.Fatal("writing the candidate", zap.Error(err))
	}
}
