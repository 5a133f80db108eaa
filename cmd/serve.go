package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fitrank/internal/metrics"
	"github.com/spigell/fitrank/internal/ranking"
	"github.com/spigell/fitrank/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rankings over HTTP against a fixed positions pool",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, rankingFlags)
		bindFlags(cmd, map[string]string{"serve.addr": "addr"})
	},
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("positions", "p", "", "positions pool file (JSON or YAML)")
	serveCmd.Flags().String("addr", ":8080", "listen address")
	addRankingFlags(serveCmd)

	serveCmd.MarkFlagRequired("positions")
}

func serve(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, config := setup()

	engine, err := newEngine(config)
	if err != nil {
		logger.Fatal("building the scoring engine", zap.Error(err))
	}

	positions, err := loadPositions(ctx, cmd.Flag("positions").Value.String(), config, logger)
	if err != nil {
		logger.Fatal("loading positions", zap.Error(err))
	}

	rankingMetrics := metrics.NewRanking(prometheus.DefaultRegisterer)
	ranker := ranking.New(engine,
		ranking.WithWorkers(config.Ranking.Workers),
		ranking.WithLogger(logger),
		ranking.WithObserver(rankingMetrics),
	)

	srv := server.New(ranker, positions,
		server.WithLogger(logger),
		server.WithMetrics(rankingMetrics, prometheus.DefaultGatherer),
		server.WithDefaults(server.Defaults{
			MinScore:     config.Ranking.MinScore,
			Limit:        config.Ranking.Limit,
			ExcludeGated: config.Ranking.ExcludeGated,
		}),
	)

	logger.Info("starting the fitrank server", zap.String("version", version), zap.Int("workers", ranker.Workers()))
	if err := srv.Run(ctx, config.Serve.Addr); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
	logger.Info("server stopped")
}
