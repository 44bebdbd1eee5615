package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/leaguedesk/standings-api/internal/platform/logging"
)

type stubPublisher struct {
	mu    sync.Mutex
	calls []RefreshInput
}

func (p *stubPublisher) EnqueueRefresh(_ context.Context, input RefreshInput) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, input)
	return nil
}

func (p *stubPublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func TestSchedulerPublishesOnInterval(t *testing.T) {
	t.Parallel()

	publisher := &stubPublisher{}
	refresher := NewRefreshService(
		RefreshConfig{Enabled: true, MaxWorkers: 1},
		&stubProvider{},
		&stubLeagueRepository{},
		&stubStandingsRepository{},
		nil,
		stubIDGenerator{},
	)
	scheduler := NewRefreshScheduler(
		SchedulerConfig{Enabled: true, Interval: 10 * time.Millisecond},
		refresher,
		publisher,
		logging.NewNop(),
	)

	scheduler.Start(context.Background())
	defer scheduler.Stop()

	deadline := time.After(2 * time.Second)
	for publisher.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduler never published a refresh job")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerDisabledIsNoOp(t *testing.T) {
	t.Parallel()

	publisher := &stubPublisher{}
	scheduler := NewRefreshScheduler(
		SchedulerConfig{Enabled: false, Interval: time.Millisecond},
		nil,
		publisher,
		logging.NewNop(),
	)

	scheduler.Start(context.Background())
	scheduler.Stop()

	if got := publisher.callCount(); got != 0 {
		t.Fatalf("expected no publishes from a disabled scheduler, got %d", got)
	}
}
