package usecase

import (
	"context"
	"testing"

	"github.com/leaguedesk/standings-api/internal/domain/league"

	crerr "github.com/cockroachdb/errors"
)

func TestLeagueService_ListLeagues_FiltersByCountryAndCurrent(t *testing.T) {
	t.Parallel()

	repo := &stubLeagueRepository{
		byID: map[int64]league.League{
			39:  {ID: 39, Name: "Premier League", Country: "England", Season: 2024, Current: true},
			40:  {ID: 40, Name: "Championship", Country: "England", Season: 2023, Current: false},
			140: {ID: 140, Name: "La Liga", Country: "Spain", Season: 2024, Current: true},
		},
	}
	service := NewLeagueService(repo)

	all, err := service.ListLeagues(context.Background(), LeagueFilter{})
	if err != nil {
		t.Fatalf("ListLeagues error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 leagues, got %d", len(all))
	}

	current := true
	got, err := service.ListLeagues(context.Background(), LeagueFilter{Country: "england", Current: &current})
	if err != nil {
		t.Fatalf("ListLeagues error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 39 {
		t.Fatalf("expected only league 39, got %+v", got)
	}
}

func TestLeagueService_GetLeague(t *testing.T) {
	t.Parallel()

	repo := &stubLeagueRepository{
		byID: map[int64]league.League{
			39: {ID: 39, Name: "Premier League", Country: "England"},
		},
	}
	service := NewLeagueService(repo)

	got, err := service.GetLeague(context.Background(), 39)
	if err != nil {
		t.Fatalf("GetLeague error: %v", err)
	}
	if got.Name != "Premier League" {
		t.Fatalf("unexpected league: %+v", got)
	}

	if _, err := service.GetLeague(context.Background(), 0); !crerr.Is(err, ErrInvalidInput) {
		t.Fatalf("GetLeague(0) error = %v, want ErrInvalidInput", err)
	}
	if _, err := service.GetLeague(context.Background(), 999); !crerr.Is(err, ErrNotFound) {
		t.Fatalf("GetLeague(999) error = %v, want ErrNotFound", err)
	}
}
