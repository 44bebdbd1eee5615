package usecase

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/leaguedesk/standings-api/internal/platform/logging"
)

// JobPublisher hands refresh work to an external queue so HTTP callbacks do
// the actual fetching. When no queue is configured the scheduler runs the
// refresh inline.
type JobPublisher interface {
	EnqueueRefresh(ctx context.Context, input RefreshInput) error
}

type SchedulerConfig struct {
	Enabled  bool
	Interval time.Duration
}

// RefreshScheduler periodically refreshes standings for every stored league.
type RefreshScheduler struct {
	cfg       SchedulerConfig
	refresher *RefreshService
	publisher JobPublisher
	logger    *logging.Logger

	cancel context.CancelFunc
	wg     conc.WaitGroup
}

func NewRefreshScheduler(cfg SchedulerConfig, refresher *RefreshService, publisher JobPublisher, logger *logging.Logger) *RefreshScheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshScheduler{
		cfg:       cfg,
		refresher: refresher,
		publisher: publisher,
		logger:    logger,
	}
}

// Start launches the ticker loop. It is a no-op when the scheduler is
// disabled or no refresher is wired.
func (s *RefreshScheduler) Start(ctx context.Context) {
	if !s.cfg.Enabled || s.refresher == nil || s.cfg.Interval <= 0 {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Go(func() {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				s.tick(loopCtx)
			}
		}
	})
}

// Stop cancels the loop and waits for an in-flight tick to finish.
func (s *RefreshScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

func (s *RefreshScheduler) tick(ctx context.Context) {
	input := RefreshInput{}

	if s.publisher != nil {
		if err := s.publisher.EnqueueRefresh(ctx, input); err != nil {
			s.logger.WarnContext(ctx, "enqueue scheduled standings refresh failed", "error", err)
		}
		return
	}

	result, err := s.refresher.RefreshStandings(ctx, input)
	if err != nil {
		s.logger.WarnContext(ctx, "scheduled standings refresh failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled standings refresh finished",
		"run_id", result.RunID,
		"leagues", result.LeagueCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
	)
}
