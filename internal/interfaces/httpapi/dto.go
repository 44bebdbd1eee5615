package httpapi

import (
	"context"

	"github.com/leaguedesk/standings-api/internal/domain/league"
	"github.com/leaguedesk/standings-api/internal/domain/standings"
)

type leagueDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Logo        string `json:"logo,omitempty"`
	Flag        string `json:"flag,omitempty"`
	Season      int    `json:"season"`
	SeasonStart string `json:"seasonStart,omitempty"`
	SeasonEnd   string `json:"seasonEnd,omitempty"`
	Current     bool   `json:"current"`
}

type standingsTableDTO struct {
	League leagueDTO          `json:"league"`
	Groups [][]standingRowDTO `json:"groups"`
}

type standingRowDTO struct {
	Rank        int         `json:"rank"`
	Team        teamRefDTO  `json:"team"`
	Points      int         `json:"points"`
	GoalsDiff   int         `json:"goalsDiff"`
	Group       string      `json:"group,omitempty"`
	Form        string      `json:"form,omitempty"`
	Status      string      `json:"status,omitempty"`
	Description string      `json:"description,omitempty"`
	All         statsDTO    `json:"all"`
	Home        statsDTO    `json:"home"`
	Away        statsDTO    `json:"away"`
	Update      string      `json:"update,omitempty"`
}

type teamRefDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type statsDTO struct {
	Played int          `json:"played"`
	Win    int          `json:"win"`
	Draw   int          `json:"draw"`
	Lose   int          `json:"lose"`
	Goals  goalTotalDTO `json:"goals"`
}

type goalTotalDTO struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

type refreshStandingsRequest struct {
	LeagueIDs []int64 `json:"league_ids" validate:"dive,gt=0"`
	Season    int     `json:"season" validate:"gte=0"`
	DryRun    bool    `json:"dry_run"`
}

type refreshLeaguesRequest struct {
	Country     string `json:"country" validate:"max=100"`
	CurrentOnly bool   `json:"current_only"`
}

type refreshLeaguesResponse struct {
	Upserted int `json:"upserted"`
}

func leagueToDTO(ctx context.Context, item league.League) leagueDTO {
	_, span := startSpan(ctx, "httpapi.leagueToDTO")
	defer span.End()

	return leagueDTO{
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
}

func standingsToDTO(ctx context.Context, table standings.LeagueStanding) standingsTableDTO {
	ctx, span := startSpan(ctx, "httpapi.standingsToDTO")
	defer span.End()

	groups := make([][]standingRowDTO, 0, len(table.Groups))
	for _, group := range table.Groups {
		rows := make([]standingRowDTO, 0, len(group))
		for _, row := range group {
			rows = append(rows, standingRowToDTO(row))
		}
		groups = append(groups, rows)
	}

	return standingsTableDTO{
		League: leagueToDTO(ctx, table.League),
		Groups: groups,
	}
}

func standingRowToDTO(row standings.Standing) standingRowDTO {
	return standingRowDTO{
		Rank: row.Rank,
		Team: teamRefDTO{
			ID:   row.Team.ID,
			Name: row.Team.Name,
			Logo: row.Team.Logo,
		},
		Points:      row.Points,
		GoalsDiff:   row.GoalsDiff,
		Group:       row.Group,
		Form:        row.Form,
		Status:      row.Status,
		Description: row.Description,
		All:         statsToDTO(row.All),
		Home:        statsToDTO(row.Home),
		Away:        statsToDTO(row.Away),
		Update:      row.Update,
	}
}

func statsToDTO(stats standings.Stats) statsDTO {
	return statsDTO{
		Played: stats.Played,
		Win:    stats.Win,
		Draw:   stats.Draw,
		Lose:   stats.Lose,
		Goals: goalTotalDTO{
			For:     stats.Goals.For,
			Against: stats.Goals.Against,
		},
	}
}
