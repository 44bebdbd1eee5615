package standings

import "context"

type Repository interface {
	GetByLeague(ctx context.Context, leagueID int64, season int) (LeagueStanding, bool, error)
	ReplaceByLeague(ctx context.Context, leagueID int64, season int, groups [][]Standing) error
}
