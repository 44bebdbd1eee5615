package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/leaguedesk/standings-api/internal/domain/standings"
	qb "github.com/leaguedesk/standings-api/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) GetByLeague(ctx context.Context, leagueID int64, season int) (standings.LeagueStanding, bool, error) {
	query, args, err := qb.Select("*").From("league_standings").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("group_ord", "rank", "team_id").
		ToSQL()
	if err != nil {
		return standings.LeagueStanding{}, false, fmt.Errorf("build select league standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return standings.LeagueStanding{}, false, fmt.Errorf("select league standings: %w", err)
	}
	if len(rows) == 0 {
		return standings.LeagueStanding{}, false, nil
	}

	groups := make([][]standings.Standing, 0, 4)
	lastOrd := -1
	for _, row := range rows {
		if row.GroupOrd != lastOrd {
			groups = append(groups, make([]standings.Standing, 0, len(rows)))
			lastOrd = row.GroupOrd
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], row.toDomain())
	}

	return standings.LeagueStanding{Groups: groups}, true, nil
}

func (r *StandingRepository) ReplaceByLeague(ctx context.Context, leagueID int64, season int, groups [][]standings.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace league standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("league_standings").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear league standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear league standings: %w", err)
	}

	for groupOrd, group := range groups {
		for _, item := range group {
			query, args, err := qb.InsertModel("league_standings", toInsertModel(leagueID, season, groupOrd, item), `ON CONFLICT (league_id, season, team_id) WHERE deleted_at IS NULL
DO UPDATE SET
    group_ord = EXCLUDED.group_ord,
    group_name = EXCLUDED.group_name,
    rank = EXCLUDED.rank,
    team_name = EXCLUDED.team_name,
    team_logo = EXCLUDED.team_logo,
    points = EXCLUDED.points,
    goals_diff = EXCLUDED.goals_diff,
    form = EXCLUDED.form,
    status = EXCLUDED.status,
    description = EXCLUDED.description,
    all_played = EXCLUDED.all_played,
    all_win = EXCLUDED.all_win,
    all_draw = EXCLUDED.all_draw,
    all_lose = EXCLUDED.all_lose,
    all_goals_for = EXCLUDED.all_goals_for,
    all_goals_against = EXCLUDED.all_goals_against,
    home_played = EXCLUDED.home_played,
    home_win = EXCLUDED.home_win,
    home_draw = EXCLUDED.home_draw,
    home_lose = EXCLUDED.home_lose,
    home_goals_for = EXCLUDED.home_goals_for,
    home_goals_against = EXCLUDED.home_goals_against,
    away_played = EXCLUDED.away_played,
    away_win = EXCLUDED.away_win,
    away_draw = EXCLUDED.away_draw,
    away_lose = EXCLUDED.away_lose,
    away_goals_for = EXCLUDED.away_goals_for,
    away_goals_against = EXCLUDED.away_goals_against,
    source_update = EXCLUDED.source_update,
    updated_at = NOW(),
    deleted_at = NULL`)
			if err != nil {
				return fmt.Errorf("build upsert league standing query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert league standing team=%d season=%d: %w", item.Team.ID, season, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace league standings tx: %w", err)
	}
	return nil
}
