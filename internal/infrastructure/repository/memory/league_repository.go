package memory

import (
	"context"
	"sync"

	"github.com/leaguedesk/standings-api/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[int64]league.League
	orders []int64
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[int64]league.League, len(leagues))
	orders := make([]int64, 0, len(leagues))

	for _, l := range leagues {
		items[l.ID] = l
		orders = append(orders, l.ID)
	}

	return &LeagueRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID int64) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return l, true, nil
}

func (r *LeagueRepository) Upsert(_ context.Context, leagues []league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range leagues {
		if _, exists := r.items[l.ID]; !exists {
			r.orders = append(r.orders, l.ID)
		}
		r.items[l.ID] = l
	}

	return nil
}
