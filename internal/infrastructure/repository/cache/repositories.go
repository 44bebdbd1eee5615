package cache

import (
	"context"
	"strconv"

	"github.com/leaguedesk/standings-api/internal/domain/league"
	"github.com/leaguedesk/standings-api/internal/domain/standings"
	basecache "github.com/leaguedesk/standings-api/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	key := "league:id:" + strconv.FormatInt(leagueID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Upsert(ctx context.Context, leagues []league.League) error {
	if err := r.next.Upsert(ctx, leagues); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "league:")
	return nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

type StandingRepository struct {
	next  standings.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standings.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) GetByLeague(ctx context.Context, leagueID int64, season int) (standings.LeagueStanding, bool, error) {
	key := standingsKey(leagueID, season)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		table, exists, err := r.next.GetByLeague(ctx, leagueID, season)
		if err != nil {
			return nil, err
		}
		return cachedStandingsByLeague{value: cloneTable(table), exists: exists}, nil
	})
	if err != nil {
		return standings.LeagueStanding{}, false, err
	}

	cached, _ := v.(cachedStandingsByLeague)
	return cloneTable(cached.value), cached.exists, nil
}

func (r *StandingRepository) ReplaceByLeague(ctx context.Context, leagueID int64, season int, groups [][]standings.Standing) error {
	if err := r.next.ReplaceByLeague(ctx, leagueID, season, groups); err != nil {
		return err
	}
	r.cache.Delete(ctx, standingsKey(leagueID, season))
	return nil
}

type cachedStandingsByLeague struct {
	value  standings.LeagueStanding
	exists bool
}

func cloneTable(table standings.LeagueStanding) standings.LeagueStanding {
	out := table
	out.Groups = make([][]standings.Standing, len(table.Groups))
	for i, group := range table.Groups {
		out.Groups[i] = append([]standings.Standing(nil), group...)
	}
	return out
}

func standingsKey(leagueID int64, season int) string {
	return "standings:" + strconv.FormatInt(leagueID, 10) + ":" + strconv.Itoa(season)
}

// Invalidator satisfies the refresh workflow's cache invalidation hook when
// reads are served from this package's decorators.
type Invalidator struct {
	cache *basecache.Store
}

func NewInvalidator(cache *basecache.Store) *Invalidator {
	return &Invalidator{cache: cache}
}

func (i *Invalidator) InvalidateLeagues(ctx context.Context) {
	i.cache.DeletePrefix(ctx, "league:")
}

func (i *Invalidator) InvalidateStandings(ctx context.Context, leagueID int64, season int) {
	i.cache.Delete(ctx, standingsKey(leagueID, season))
}
