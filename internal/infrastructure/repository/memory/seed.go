package memory

import (
	"fmt"

	"github.com/leaguedesk/standings-api/internal/domain/league"
	"github.com/leaguedesk/standings-api/internal/domain/standings"
)

const (
	LeagueIDPremierLeague int64 = 39
	LeagueIDLaLiga        int64 = 140

	SeedSeason = 2024
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:          LeagueIDPremierLeague,
			Name:        "Premier League",
			Country:     "England",
			Logo:        "https://media.api-sports.io/football/leagues/39.png",
			Flag:        "https://media.api-sports.io/flags/gb.svg",
			Season:      SeedSeason,
			SeasonStart: "2024-08-16",
			SeasonEnd:   "2025-05-25",
			Current:     true,
		},
		{
			ID:          LeagueIDLaLiga,
			Name:        "La Liga",
			Country:     "Spain",
			Logo:        "https://media.api-sports.io/football/leagues/140.png",
			Flag:        "https://media.api-sports.io/flags/es.svg",
			Season:      SeedSeason,
			SeasonStart: "2024-08-15",
			SeasonEnd:   "2025-05-25",
			Current:     true,
		},
	}
}

func SeedStandings() map[string][][]standings.Standing {
	premierLeague := []standings.Standing{
		seedRow(1, 50, "Manchester City", "Premier League", 91, 62, "WWWWD"),
		seedRow(2, 42, "Arsenal", "Premier League", 89, 62, "WWWWW"),
		seedRow(3, 40, "Liverpool", "Premier League", 82, 45, "WDWWD"),
		seedRow(4, 66, "Aston Villa", "Premier League", 68, 15, "LWDLW"),
	}
	laLiga := []standings.Standing{
		seedRow(1, 541, "Real Madrid", "La Liga", 95, 61, "WWDWW"),
		seedRow(2, 529, "Barcelona", "La Liga", 85, 35, "WWLWW"),
		seedRow(3, 547, "Girona", "La Liga", 81, 39, "WLWWW"),
		seedRow(4, 530, "Atletico Madrid", "La Liga", 76, 27, "WLWDL"),
	}

	return map[string][][]standings.Standing{
		tableKey(LeagueIDPremierLeague, SeedSeason): {premierLeague},
		tableKey(LeagueIDLaLiga, SeedSeason):        {laLiga},
	}
}

func seedRow(rank int, teamID int64, teamName, group string, points, goalsDiff int, form string) standings.Standing {
	return standings.Standing{
		Rank: rank,
		Team: standings.TeamRef{
			ID:   teamID,
			Name: teamName,
			Logo: fmt.Sprintf("https://media.api-sports.io/football/teams/%d.png", teamID),
		},
		Points:      points,
		GoalsDiff:   goalsDiff,
		Group:       group,
		Form:        form,
		Status:      "same",
		Description: "Promotion - Champions League (Group Stage)",
		All: standings.Stats{
			Played: 38,
			Win:    points / 3,
			Draw:   points % 3,
			Lose:   38 - points/3 - points%3,
			Goals:  standings.GoalTotals{For: 70 + goalsDiff/2, Against: 70 - goalsDiff/2},
		},
		Update: "2025-05-25T00:00:00+00:00",
	}
}
