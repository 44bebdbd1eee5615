package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/leaguedesk/standings-api/internal/domain/league"
)

// LeagueFilter narrows ListLeagues. Zero-value fields match everything.
type LeagueFilter struct {
	Country string
	Current *bool
}

type LeagueService struct {
	leagueRepo league.Repository
}

func NewLeagueService(leagueRepo league.Repository) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context, filter LeagueFilter) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	country := strings.TrimSpace(filter.Country)
	if country == "" && filter.Current == nil {
		return leagues, nil
	}

	out := make([]league.League, 0, len(leagues))
	for _, item := range leagues {
		if country != "" && !strings.EqualFold(item.Country, country) {
			continue
		}
		if filter.Current != nil && item.Current != *filter.Current {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID int64) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.GetLeague")
	defer span.End()

	if leagueID <= 0 {
		return league.League{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	return item, nil
}
