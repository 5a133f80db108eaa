// Package server exposes ranking over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/fitrank/internal/filtering"
	"github.com/spigell/fitrank/internal/logger"
	"github.com/spigell/fitrank/internal/pool"
	"github.com/spigell/fitrank/internal/profile"
	"github.com/spigell/fitrank/internal/scoring"
)

const maxBodyBytes = 1 << 20

// Ranker is satisfied by *ranking.Ranker.
type Ranker interface {
	Rank(ctx context.Context, c scoring.Candidate, positions []scoring.Position, minScore, limit int) ([]scoring.MatchScore, error)
}

// MatchRecorder is satisfied by *metrics.Ranking.
type MatchRecorder interface {
	RecordMatches(matches []scoring.MatchScore)
}

// Defaults apply when a request leaves a field unset.
type Defaults struct {
	MinScore     int
	Limit        int
	ExcludeGated bool
}

type Server struct {
	ranker    Ranker
	positions *pool.Positions
	snapshot  []scoring.Position
	defaults  Defaults
	logger    *zap.Logger
	recorder  MatchRecorder
	gatherer  prometheus.Gatherer
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = logger.WithFields(l, logger.StringFields(logger.StringField{Key: "component", Value: "server"})...)
		}
	}
}

func WithMetrics(recorder MatchRecorder, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.recorder = recorder
		s.gatherer = gatherer
	}
}

func WithDefaults(d Defaults) Option {
	return func(s *Server) {
		s.defaults = d
	}
}

// New serves rankings against a fixed pool snapshot taken here.
func New(ranker Ranker, positions *pool.Positions, opts ...Option) *Server {
	if positions == nil {
		positions = pool.New()
	}
	s := &Server{
		ranker:    ranker,
		positions: positions,
		snapshot:  positions.Snapshot(),
		logger:    zap.NewNop(),
		gatherer:  prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RankRequest carries a raw candidate record in any supported shape.
type RankRequest struct {
	Candidate    map[string]any `json:"candidate"`
	MinScore     *int           `json:"minScore,omitempty"`
	Limit        *int           `json:"limit,omitempty"`
	ExcludeGated *bool          `json:"excludeGated,omitempty"`
}

type RankResponse struct {
	TotalPositions int                  `json:"totalPositions"`
	MatchCount     int                  `json:"matchCount"`
	Matches        []scoring.MatchScore `json:"matches"`
	Warnings       []string             `json:"warnings,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/rank", s.handleRank)
	mux.HandleFunc("GET /v1/positions", s.handlePositions)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}
	if len(req.Candidate) == 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "candidate is required"})
		return
	}

	minScore, limit, excludeGated := s.defaults.MinScore, s.defaults.Limit, s.defaults.ExcludeGated
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	if req.Limit != nil {
		limit = *req.Limit
	}
	if req.ExcludeGated != nil {
		excludeGated = *req.ExcludeGated
	}

	candidate, warnings := profile.DecodeCandidate(req.Candidate)

	// Gated matches are dropped before the limit applies.
	rankLimit := limit
	if excludeGated {
		rankLimit = 0
	}

	matches, err := s.ranker.Rank(r.Context(), candidate, s.snapshot, minScore, rankLimit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		s.logger.Warn("ranking failed", zap.Error(err))
		s.writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	if excludeGated {
		matches, _ = filtering.DropGated(matches)
		if limit > 0 && len(matches) > limit {
			matches = matches[:limit]
		}
	}
	if s.recorder != nil {
		s.recorder.RecordMatches(matches)
	}

	s.writeJSON(w, http.StatusOK, RankResponse{
		TotalPositions: len(s.snapshot),
		MatchCount:     len(matches),
		Matches:        matches,
		Warnings:       warnings,
	})
}

func (s *Server) handlePositions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"total":    s.positions.Len(),
		"bySource": s.positions.CountBySource(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("writing response", zap.Error(err))
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", zap.String("addr", addr), zap.Int("positions", len(s.snapshot)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
