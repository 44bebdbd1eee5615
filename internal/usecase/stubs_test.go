package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/leaguedesk/standings-api/internal/domain/league"
	"github.com/leaguedesk/standings-api/internal/domain/standings"
	"github.com/leaguedesk/standings-api/internal/platform/params"
)

type stubLeagueRepository struct {
	mu       sync.Mutex
	byID     map[int64]league.League
	upserted [][]league.League
	listErr  error
}

func (s *stubLeagueRepository) List(_ context.Context) ([]league.League, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]league.League, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	return out, nil
}

func (s *stubLeagueRepository) GetByID(_ context.Context, leagueID int64) (league.League, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.byID[leagueID]
	return item, ok, nil
}

func (s *stubLeagueRepository) Upsert(_ context.Context, leagues []league.League) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byID == nil {
		s.byID = make(map[int64]league.League, len(leagues))
	}
	for _, item := range leagues {
		s.byID[item.ID] = item
	}
	s.upserted = append(s.upserted, leagues)
	return nil
}

type stubStandingsRepository struct {
	mu     sync.Mutex
	tables map[string][][]standings.Standing
}

func standingsTableKey(leagueID int64, season int) string {
	return fmt.Sprintf("%d:%d", leagueID, season)
}

func (s *stubStandingsRepository) GetByLeague(_ context.Context, leagueID int64, season int) (standings.LeagueStanding, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups, ok := s.tables[standingsTableKey(leagueID, season)]
	if !ok {
		return standings.LeagueStanding{}, false, nil
	}
	return standings.LeagueStanding{
		League: league.League{ID: leagueID, Season: season},
		Groups: groups,
	}, true, nil
}

func (s *stubStandingsRepository) ReplaceByLeague(_ context.Context, leagueID int64, season int, groups [][]standings.Standing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tables == nil {
		s.tables = make(map[string][][]standings.Standing)
	}
	s.tables[standingsTableKey(leagueID, season)] = groups
	return nil
}

type stubProvider struct {
	mu             sync.Mutex
	leagues        []league.League
	leaguesQueries []params.Record
	tables         map[string]standings.LeagueStanding
	fetchErr       error
}

func (s *stubProvider) FetchLeagues(_ context.Context, query params.Record) ([]league.League, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaguesQueries = append(s.leaguesQueries, query)
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.leagues, nil
}

func (s *stubProvider) FetchStandings(_ context.Context, leagueID int64, season int) (standings.LeagueStanding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return standings.LeagueStanding{}, s.fetchErr
	}
	table, ok := s.tables[standingsTableKey(leagueID, season)]
	if !ok {
		return standings.LeagueStanding{}, fmt.Errorf("%w: standings league=%d season=%d", ErrNotFound, leagueID, season)
	}
	return table, nil
}

type stubInvalidator struct {
	mu               sync.Mutex
	leagueDrops      int
	standingsDropped []string
}

func (s *stubInvalidator) InvalidateLeagues(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leagueDrops++
}

func (s *stubInvalidator) InvalidateStandings(_ context.Context, leagueID int64, season int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.standingsDropped = append(s.standingsDropped, standingsTableKey(leagueID, season))
}

type stubIDGenerator struct{}

func (stubIDGenerator) NewID() (string, error) {
	return "0123456789abcdef", nil
}
