package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fitrank/internal/filtering"
	"github.com/spigell/fitrank/internal/output"
	"github.com/spigell/fitrank/internal/pool"
	"github.com/spigell/fitrank/internal/ranking"
	"github.com/spigell/fitrank/internal/scoring"
)

const (
	PromptInsights            = "Show insights for a match"
	PromptReportByCompany     = "Report by companies"
	PromptResultsToFile       = "Dump results to file"
	PromptAppendToExcludeFile = "Append listed positions to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a pool of positions for one candidate",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, rankingFlags)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("candidate", "c", "", "candidate record file (JSON or YAML)")
	rankCmd.Flags().StringP("positions", "p", "", "positions pool file (JSON or YAML)")
	rankCmd.Flags().BoolP("auto-approve", "y", false, "print the table and exit without the interactive menu")
	rankCmd.Flags().StringP("output", "o", "table", "output format: table or json")
	addRankingFlags(rankCmd)

	rankCmd.MarkFlagRequired("candidate")
	rankCmd.MarkFlagRequired("positions")
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	logger.Info("starting the fitrank", zap.String("version", version), zap.String("profile", config.Profile))

	engine, err := newEngine(config)
	if err != nil {
		logger.Fatal("building the scoring engine", zap.Error(err))
	}
	logger.Debug("scoring engine", zap.Stringer("engine", engine))

	candidate, err := loadCandidate(cmd.Flag("candidate").Value.String(), logger)
	if err != nil {
		logger.Fatal("loading the candidate", zap.Error(err))
	}

	positions, err := loadPositions(ctx, cmd.Flag("positions").Value.String(), config, logger)
	if err != nil {
		logger.Fatal("loading positions", zap.Error(err))
	}

	ranker := ranking.New(engine, ranking.WithWorkers(config.Ranking.Workers), ranking.WithLogger(logger))

	limit := config.Ranking.Limit
	if config.Ranking.ExcludeGated {
		limit = 0
	}
	matches, err := ranker.Rank(ctx, candidate, positions.Snapshot(), config.Ranking.MinScore, limit)
	if err != nil {
		logger.Fatal("ranking positions", zap.Error(err))
	}

	if config.Ranking.ExcludeGated {
		var dropped int
		matches, dropped = filtering.DropGated(matches)
		if config.Ranking.Limit > 0 && len(matches) > config.Ranking.Limit {
			matches = matches[:config.Ranking.Limit]
		}
		logger.Info("excluding matches failing hard gates", zap.Int("dropped", dropped))
	}

	printer := output.NewPrinter(os.Stdout, output.ResolveColors(!viper.GetBool("json")))

	if strings.EqualFold(cmd.Flag("output").Value.String(), "json") {
		if err := printer.JSON(matches); err != nil {
			logger.Fatal("writing results", zap.Error(err))
		}
		return
	}

	if len(matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no positions matched"))
		return
	}

	for {
		if err := printer.Matches(matches); err != nil {
			logger.Fatal("rendering results", zap.Error(err))
		}

		if cmd.Flag("auto-approve").Value.String() == "true" {
			return
		}

		items := []string{PromptInsights, PromptReportByCompany, PromptResultsToFile}
		if config.ExcludeFile != "" {
			items = append(items, PromptAppendToExcludeFile)
		}
		menu := promptui.Select{
			Label: "Next?",
			Items: append(items, PromptExit),
		}

		_, action, err := menu.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		matches, err = handleAction(action, logger, config, printer, positions, matches)
		if err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
		if len(matches) == 0 {
			logger.Info("exiting", zap.String("reason", "no matches left"))
			return
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, printer *output.Printer, positions *pool.Positions, matches []scoring.MatchScore) ([]scoring.MatchScore, error) {
	switch action {
	case PromptInsights:
		return matches, showInsights(printer, matches)
	case PromptReportByCompany:
		listed := listedPositions(positions, matches)
		if err := printer.JSON(listed.ReportByCompany()); err != nil {
			return matches, err
		}
		logger.Info("report by companies", zap.Int("positions count", listed.Len()))
		return matches, nil
	case PromptResultsToFile:
		filename, err := dumpToTmpFile(matches)
		if err != nil {
			return matches, fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return matches, nil
	case PromptAppendToExcludeFile:
		excluded, err := pool.ExcludedFromFile(config.ExcludeFile)
		if err != nil {
			return matches, err
		}

		excluded.Append(listedPositions(positions, matches).ToExcluded())
		if err := excluded.ToFile(config.ExcludeFile); err != nil {
			return matches, err
		}

		logger.Info("appended to exclude file", zap.String("filename", config.ExcludeFile), zap.Int("count", len(matches)))
		return nil, nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return matches, errExit
	default:
		return matches, fmt.Errorf("invalid action: %s", action)
	}
}

func showInsights(printer *output.Printer, matches []scoring.MatchScore) error {
	for {
		items := make([]string, 0, len(matches)+1)
		for _, m := range matches {
			items = append(items, fmt.Sprintf("%s %s / %s / %d", m.PositionID, m.PositionTitle, m.Company, m.OverallScore))
		}

		matchPrompt := promptui.Select{
			Label: "Choose a match and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := matchPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		if err := printer.Insights(matches[idx]); err != nil {
			return err
		}
	}
}

// listedPositions returns the pool entries behind the matches, in match order.
func listedPositions(positions *pool.Positions, matches []scoring.MatchScore) *pool.Positions {
	listed := &pool.Positions{}
	for _, m := range matches {
		if position := positions.FindByID(m.PositionID); position != nil {
			listed.Items = append(listed.Items, position)
		}
	}
	return listed
}

func dumpToTmpFile(matches []scoring.MatchScore) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := output.NewPrinter(file, false).JSON(matches); err != nil {
		return "", err
	}
	return file.Name(), nil
}
