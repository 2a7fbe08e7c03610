package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"MarketPulse/internal/config"
	"MarketPulse/internal/engine"
	"MarketPulse/internal/history"
	"MarketPulse/internal/notifier"
	"MarketPulse/internal/report"
)

// Scheduler runs the signal engine on a cron schedule and on demand.
// An in-flight flag keeps scheduled and manual runs from overlapping.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *engine.Engine
	Store    *history.Store
	Renderer *report.Renderer
	Notifier *notifier.TelegramNotifier
	Cfg      *config.Config
	Ctx      context.Context

	running atomic.Bool
}

// New creates a Scheduler.
func New(ctx context.Context, eng *engine.Engine, store *history.Store, rend *report.Renderer, tn *notifier.TelegramNotifier, cfg *config.Config) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   eng,
		Store:    store,
		Renderer: rend,
		Notifier: tn,
		Cfg:      cfg,
		Ctx:      ctx,
	}
}

// Register adds the daily run to the cron table.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.runTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the pipeline immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.runTask()
}

func (s *Scheduler) runTask() {
	if !s.running.CompareAndSwap(false, true) {
		log.Warn().Msg("run already in flight, skipping")
		return
	}
	defer s.running.Store(false)

	log.Info().Msg("running signal pipeline")
	result, err := s.Engine.Run(s.Ctx)
	if err != nil {
		// The one run-level failure: the history append could not be persisted.
		log.Error().Err(err).Msg("run failed")
		s.trySend(fmt.Sprintf("❌ run failed: %v", err))
		return
	}

	results := result.Results()
	recent := s.Store.RecentWindow(s.Cfg.Report.RecentWindow)
	if err := s.Renderer.Render(results, result.Ratio, recent); err != nil {
		log.Error().Err(err).Msg("render report")
	}

	s.trySend(notifier.FormatRunReport(result, s.Cfg.Composite.Name))
	if alert := notifier.FormatDangerAlert(results); alert != "" {
		s.trySend(alert)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch strings.TrimSpace(command) {
	case "/run":
		go s.runTask()
		return "run started"
	case "/status":
		recent := s.Store.RecentWindow(1)
		if len(recent) == 0 {
			return "no snapshots yet"
		}
		names := make([]string, len(s.Cfg.Watchlist))
		for i, inst := range s.Cfg.Watchlist {
			names[i] = inst.Name
		}
		return notifier.FormatSnapshot(recent[0], s.Cfg.Composite.Name, names)
	default:
		return "commands:\n• /run — run the pipeline now\n• /status — latest snapshot"
	}
}

func (s *Scheduler) trySend(text string) {
	if text == "" {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
