package standings

import "github.com/leaguedesk/standings-api/internal/domain/league"

// LeagueStanding pairs a league with its standings table. Groups holds one
// ranked list per group or division; single-table leagues have one group.
type LeagueStanding struct {
	League league.League
	Groups [][]Standing
}

// Standing is one team's row in a league table.
type Standing struct {
	Rank        int
	Team        TeamRef
	Points      int
	GoalsDiff   int
	Group       string
	Form        string
	Status      string
	Description string
	All         Stats
	Home        Stats
	Away        Stats
	Update      string
}

// TeamRef is the minimal team reference embedded in a standing row.
type TeamRef struct {
	ID   int64
	Name string
	Logo string
}

// Stats holds match counts for one scope (overall, home or away). The counts
// come straight from the provider; win+draw+lose == played is not enforced.
type Stats struct {
	Played int
	Win    int
	Draw   int
	Lose   int
	Goals  GoalTotals
}

type GoalTotals struct {
	For     int
	Against int
}
