package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/leaguedesk/standings-api/internal/domain/standings"
)

type StandingRepository struct {
	mu     sync.RWMutex
	tables map[string][][]standings.Standing
}

func NewStandingRepository(tables map[string][][]standings.Standing) *StandingRepository {
	if tables == nil {
		tables = make(map[string][][]standings.Standing)
	}
	return &StandingRepository{tables: tables}
}

func tableKey(leagueID int64, season int) string {
	return fmt.Sprintf("%d:%d", leagueID, season)
}

func (r *StandingRepository) GetByLeague(_ context.Context, leagueID int64, season int) (standings.LeagueStanding, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups, ok := r.tables[tableKey(leagueID, season)]
	if !ok {
		return standings.LeagueStanding{}, false, nil
	}

	out := make([][]standings.Standing, len(groups))
	for i, group := range groups {
		out[i] = make([]standings.Standing, len(group))
		copy(out[i], group)
	}

	return standings.LeagueStanding{Groups: out}, true, nil
}

func (r *StandingRepository) ReplaceByLeague(_ context.Context, leagueID int64, season int, groups [][]standings.Standing) error {
	stored := make([][]standings.Standing, len(groups))
	for i, group := range groups {
		stored[i] = make([]standings.Standing, len(group))
		copy(stored[i], group)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[tableKey(leagueID, season)] = stored
	return nil
}
