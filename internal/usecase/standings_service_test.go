package usecase

import (
	"context"
	"testing"

	"github.com/leaguedesk/standings-api/internal/domain/league"
	"github.com/leaguedesk/standings-api/internal/domain/standings"

	crerr "github.com/cockroachdb/errors"
)

func TestStandingsService_GetByLeague_DefaultsToLeagueSeason(t *testing.T) {
	t.Parallel()

	leagueRepo := &stubLeagueRepository{
		byID: map[int64]league.League{
			39: {ID: 39, Name: "Premier League", Country: "England", Season: 2024, Current: true},
		},
	}
	standingRepo := &stubStandingsRepository{
		tables: map[string][][]standings.Standing{
			standingsTableKey(39, 2024): {
				{
					{Rank: 1, Team: standings.TeamRef{ID: 50, Name: "Manchester City"}, Points: 91},
					{Rank: 2, Team: standings.TeamRef{ID: 42, Name: "Arsenal"}, Points: 89},
				},
			},
		},
	}
	service := NewStandingsService(leagueRepo, standingRepo)

	got, err := service.GetByLeague(context.Background(), 39, 0)
	if err != nil {
		t.Fatalf("GetByLeague error: %v", err)
	}
	if got.League.Name != "Premier League" {
		t.Fatalf("league header not attached: %+v", got.League)
	}
	if len(got.Groups) != 1 || len(got.Groups[0]) != 2 {
		t.Fatalf("unexpected table shape: %+v", got.Groups)
	}
	if got.Groups[0][0].Team.ID != 50 {
		t.Fatalf("row order changed: %+v", got.Groups[0][0])
	}
}

func TestStandingsService_GetByLeague_Errors(t *testing.T) {
	t.Parallel()

	leagueRepo := &stubLeagueRepository{
		byID: map[int64]league.League{
			39: {ID: 39, Name: "Premier League", Season: 2024},
		},
	}
	service := NewStandingsService(leagueRepo, &stubStandingsRepository{})

	if _, err := service.GetByLeague(context.Background(), 0, 2024); !crerr.Is(err, ErrInvalidInput) {
		t.Fatalf("league id 0 error = %v, want ErrInvalidInput", err)
	}
	if _, err := service.GetByLeague(context.Background(), 77, 2024); !crerr.Is(err, ErrNotFound) {
		t.Fatalf("unknown league error = %v, want ErrNotFound", err)
	}
	if _, err := service.GetByLeague(context.Background(), 39, 1901); !crerr.Is(err, ErrNotFound) {
		t.Fatalf("missing table error = %v, want ErrNotFound", err)
	}
}
