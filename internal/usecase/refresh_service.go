package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/leaguedesk/standings-api/internal/domain/league"
	"github.com/leaguedesk/standings-api/internal/domain/standings"
	"github.com/leaguedesk/standings-api/internal/platform/params"
)

// StandingsProvider is the upstream football data source.
type StandingsProvider interface {
	FetchLeagues(ctx context.Context, query params.Record) ([]league.League, error)
	FetchStandings(ctx context.Context, leagueID int64, season int) (standings.LeagueStanding, error)
}

// CacheInvalidator drops cached reads after a refresh rewrites them.
type CacheInvalidator interface {
	InvalidateLeagues(ctx context.Context)
	InvalidateStandings(ctx context.Context, leagueID int64, season int)
}

type idGenerator interface {
	NewID() (string, error)
}

type RefreshConfig struct {
	Enabled    bool
	MaxWorkers int
}

type RefreshInput struct {
	// LeagueIDs narrows the refresh; empty means every stored league.
	LeagueIDs []int64 `json:"league_ids"`
	// Season overrides the per-league current season when greater than zero.
	Season int `json:"season"`
	// DryRun fetches from the provider but skips repository writes.
	DryRun bool `json:"dry_run"`
}

type RefreshResult struct {
	RunID        string              `json:"run_id"`
	LeagueCount  int                 `json:"league_count"`
	TaskCount    int                 `json:"task_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	SkippedCount int                 `json:"skipped_count"`
	WorkerCount  int                 `json:"worker_count"`
	DryRun       bool                `json:"dry_run"`
	Tasks        []RefreshTaskResult `json:"tasks"`
}

type RefreshTaskResult struct {
	LeagueID   int64  `json:"league_id"`
	Season     int    `json:"season"`
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"
	refreshStatusSkipped = "skipped"
)

type RefreshService struct {
	cfg          RefreshConfig
	provider     StandingsProvider
	leagueRepo   league.Repository
	standingRepo standings.Repository
	invalidator  CacheInvalidator
	ids          idGenerator
}

func NewRefreshService(
	cfg RefreshConfig,
	provider StandingsProvider,
	leagueRepo league.Repository,
	standingRepo standings.Repository,
	invalidator CacheInvalidator,
	ids idGenerator,
) *RefreshService {
	return &RefreshService{
		cfg:          cfg,
		provider:     provider,
		leagueRepo:   leagueRepo,
		standingRepo: standingRepo,
		invalidator:  invalidator,
		ids:          ids,
	}
}

// RefreshLeagues pulls the league catalog from the provider and upserts it.
// Country and current filters default to unset so the provider returns its
// full catalog unless the caller narrows it.
func (s *RefreshService) RefreshLeagues(ctx context.Context, country string, currentOnly bool) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.RefreshLeagues")
	defer span.End()

	if !s.cfg.Enabled {
		return 0, fmt.Errorf("%w: provider refresh is disabled (PROVIDER_ENABLED=false)", ErrDependencyUnavailable)
	}

	query := params.New()
	if country != "" {
		query = query.With("country", params.String(country))
	} else {
		query = query.With("country", params.Unset())
	}
	if currentOnly {
		query = query.With("current", params.Bool(true))
	} else {
		query = query.With("current", params.Unset())
	}

	leagues, err := s.provider.FetchLeagues(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("fetch leagues from provider: %w", err)
	}
	if len(leagues) == 0 {
		return 0, nil
	}

	if err := s.leagueRepo.Upsert(ctx, leagues); err != nil {
		return 0, fmt.Errorf("upsert leagues: %w", err)
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateLeagues(ctx)
	}

	return len(leagues), nil
}

// RefreshStandings fans out one provider fetch per target league on a bounded
// worker pool and replaces each stored table.
func (s *RefreshService) RefreshStandings(ctx context.Context, input RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.RefreshStandings")
	defer span.End()

	if !s.cfg.Enabled {
		return RefreshResult{}, fmt.Errorf("%w: provider refresh is disabled (PROVIDER_ENABLED=false)", ErrDependencyUnavailable)
	}
	if s.provider == nil || s.leagueRepo == nil || s.standingRepo == nil {
		return RefreshResult{}, fmt.Errorf("%w: refresh service is not fully configured", ErrDependencyUnavailable)
	}

	targets, err := s.resolveTargets(ctx, input)
	if err != nil {
		return RefreshResult{}, err
	}

	runID := "run-unknown"
	if s.ids != nil {
		if generated, idErr := s.ids.NewID(); idErr == nil {
			runID = "run-" + generated
		}
	}

	workerCount := normalizeRefreshWorkerCount(s.cfg.MaxWorkers, len(targets))
	result := RefreshResult{
		RunID:       runID,
		LeagueCount: len(targets),
		TaskCount:   len(targets),
		WorkerCount: workerCount,
		DryRun:      input.DryRun,
		Tasks:       make([]RefreshTaskResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return result, nil
	}

	results := make(chan RefreshTaskResult, len(targets))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RefreshTaskResult{
				LeagueID: target.leagueID,
				Season:   target.season,
			}

			rows, status, message := s.runRefreshTask(ctx, target, input.DryRun)
			row.Rows = rows
			row.Status = status
			row.Message = message
			row.DurationMs = time.Since(start).Milliseconds()

			switch status {
			case refreshStatusSuccess:
				successCount.Add(1)
			case refreshStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].LeagueID < result.Tasks[j].LeagueID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	return result, nil
}

type refreshTarget struct {
	leagueID int64
	season   int
}

func (s *RefreshService) resolveTargets(ctx context.Context, input RefreshInput) ([]refreshTarget, error) {
	for _, leagueID := range input.LeagueIDs {
		if leagueID <= 0 {
			return nil, fmt.Errorf("%w: league ids must be greater than zero", ErrInvalidInput)
		}
	}
	if input.Season < 0 {
		return nil, fmt.Errorf("%w: season must not be negative", ErrInvalidInput)
	}

	if len(input.LeagueIDs) > 0 {
		out := make([]refreshTarget, 0, len(input.LeagueIDs))
		seen := make(map[int64]struct{}, len(input.LeagueIDs))
		for _, leagueID := range input.LeagueIDs {
			if _, exists := seen[leagueID]; exists {
				continue
			}
			seen[leagueID] = struct{}{}

			season := input.Season
			if season <= 0 {
				item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
				if err != nil {
					return nil, fmt.Errorf("get league %d: %w", leagueID, err)
				}
				if !exists {
					return nil, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
				}
				season = item.Season
			}
			if season <= 0 {
				return nil, fmt.Errorf("%w: no season known for league=%d", ErrInvalidInput, leagueID)
			}
			out = append(out, refreshTarget{leagueID: leagueID, season: season})
		}
		return out, nil
	}

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]refreshTarget, 0, len(leagues))
	for _, item := range leagues {
		season := input.Season
		if season <= 0 {
			season = item.Season
		}
		if item.ID <= 0 || season <= 0 {
			continue
		}
		out = append(out, refreshTarget{leagueID: item.ID, season: season})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].leagueID < out[j].leagueID
	})
	return out, nil
}

func (s *RefreshService) runRefreshTask(ctx context.Context, target refreshTarget, dryRun bool) (int, string, string) {
	table, err := s.provider.FetchStandings(ctx, target.leagueID, target.season)
	if err != nil {
		if IsNotFound(err) {
			return 0, refreshStatusSkipped, "provider has no standings for this season"
		}
		return 0, refreshStatusFailed, err.Error()
	}

	rows := 0
	for _, group := range table.Groups {
		rows += len(group)
	}
	if rows == 0 {
		return 0, refreshStatusSkipped, "provider returned an empty table"
	}

	if dryRun {
		return rows, refreshStatusSuccess, ""
	}

	if err := s.standingRepo.ReplaceByLeague(ctx, target.leagueID, target.season, table.Groups); err != nil {
		return 0, refreshStatusFailed, fmt.Sprintf("replace standings: %v", err)
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateStandings(ctx, target.leagueID, target.season)
	}

	return rows, refreshStatusSuccess, ""
}

func normalizeRefreshWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
