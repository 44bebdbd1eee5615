package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/leaguedesk/standings-api/internal/domain/league"
	qb "github.com/leaguedesk/standings-api/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *LeagueRepository) Upsert(ctx context.Context, leagues []league.League) error {
	if len(leagues) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert leagues: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range leagues {
		insertModel := leagueInsertModel{
			ID:          item.ID,
			Name:        item.Name,
			Country:     item.Country,
			Logo:        item.Logo,
			Flag:        item.Flag,
			Season:      item.Season,
			SeasonStart: item.SeasonStart,
			SeasonEnd:   item.SeasonEnd,
			Current:     item.Current,
		}
		query, args, err := qb.InsertModel("leagues", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    country = EXCLUDED.country,
    logo = EXCLUDED.logo,
    flag = EXCLUDED.flag,
    season = EXCLUDED.season,
    season_start = EXCLUDED.season_start,
    season_end = EXCLUDED.season_end,
    current = EXCLUDED.current,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert league query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert league id=%d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert leagues tx: %w", err)
	}
	return nil
}
