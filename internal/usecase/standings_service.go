package usecase

import (
	"context"
	"fmt"

	"github.com/leaguedesk/standings-api/internal/domain/league"
	"github.com/leaguedesk/standings-api/internal/domain/standings"
)

type StandingsService struct {
	leagueRepo   league.Repository
	standingRepo standings.Repository
}

func NewStandingsService(leagueRepo league.Repository, standingRepo standings.Repository) *StandingsService {
	return &StandingsService{
		leagueRepo:   leagueRepo,
		standingRepo: standingRepo,
	}
}

func (s *StandingsService) GetByLeague(ctx context.Context, leagueID int64, season int) (standings.LeagueStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.GetByLeague")
	defer span.End()

	if leagueID <= 0 {
		return standings.LeagueStanding{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return standings.LeagueStanding{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return standings.LeagueStanding{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	if season <= 0 {
		season = item.Season
	}
	if season <= 0 {
		return standings.LeagueStanding{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	table, exists, err := s.standingRepo.GetByLeague(ctx, leagueID, season)
	if err != nil {
		return standings.LeagueStanding{}, fmt.Errorf("get standings: %w", err)
	}
	if !exists {
		return standings.LeagueStanding{}, fmt.Errorf("%w: standings league=%d season=%d", ErrNotFound, leagueID, season)
	}

	table.League = item
	return table, nil
}
