package postgres

import (
	"time"

	"github.com/leaguedesk/standings-api/internal/domain/league"
)

type leagueTableModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Country     string     `db:"country"`
	Logo        string     `db:"logo"`
	Flag        string     `db:"flag"`
	Season      int        `db:"season"`
	SeasonStart string     `db:"season_start"`
	SeasonEnd   string     `db:"season_end"`
	Current     bool       `db:"current"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (row leagueTableModel) toDomain() league.League {
	return league.League{
		ID:          row.ID,
		Name:        row.Name,
		Country:     row.Country,
		Logo:        row.Logo,
		Flag:        row.Flag,
		Season:      row.Season,
		SeasonStart: row.SeasonStart,
		SeasonEnd:   row.SeasonEnd,
		Current:     row.Current,
	}
}

type leagueInsertModel struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Country     string `db:"country"`
	Logo        string `db:"logo"`
	Flag        string `db:"flag"`
	Season      int    `db:"season"`
	SeasonStart string `db:"season_start"`
	SeasonEnd   string `db:"season_end"`
	Current     bool   `db:"current"`
}
