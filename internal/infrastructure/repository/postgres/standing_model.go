package postgres

import (
	"time"

	"github.com/leaguedesk/standings-api/internal/domain/standings"
)

// League standings are stored flattened, one row per team per group. The
// [][]Standing shape is rebuilt on read from group_ord and rank ordering.
type standingTableModel struct {
	ID           int64      `db:"id"`
	LeagueID     int64      `db:"league_id"`
	Season       int        `db:"season"`
	GroupOrd     int        `db:"group_ord"`
	GroupName    string     `db:"group_name"`
	Rank         int        `db:"rank"`
	TeamID       int64      `db:"team_id"`
	TeamName     string     `db:"team_name"`
	TeamLogo     string     `db:"team_logo"`
	Points       int        `db:"points"`
	GoalsDiff    int        `db:"goals_diff"`
	Form         string     `db:"form"`
	Status       string     `db:"status"`
	Description  string     `db:"description"`
	AllPlayed    int        `db:"all_played"`
	AllWin       int        `db:"all_win"`
	AllDraw      int        `db:"all_draw"`
	AllLose      int        `db:"all_lose"`
	AllGoalsFor  int        `db:"all_goals_for"`
	AllGoalsAg   int        `db:"all_goals_against"`
	HomePlayed   int        `db:"home_played"`
	HomeWin      int        `db:"home_win"`
	HomeDraw     int        `db:"home_draw"`
	HomeLose     int        `db:"home_lose"`
	HomeGoalsFor int        `db:"home_goals_for"`
	HomeGoalsAg  int        `db:"home_goals_against"`
	AwayPlayed   int        `db:"away_played"`
	AwayWin      int        `db:"away_win"`
	AwayDraw     int        `db:"away_draw"`
	AwayLose     int        `db:"away_lose"`
	AwayGoalsFor int        `db:"away_goals_for"`
	AwayGoalsAg  int        `db:"away_goals_against"`
	SourceUpdate string     `db:"source_update"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (row standingTableModel) toDomain() standings.Standing {
	return standings.Standing{
		Rank: row.Rank,
		Team: standings.TeamRef{
			ID:   row.TeamID,
			Name: row.TeamName,
			Logo: row.TeamLogo,
		},
		Points:      row.Points,
		GoalsDiff:   row.GoalsDiff,
		Group:       row.GroupName,
		Form:        row.Form,
		Status:      row.Status,
		Description: row.Description,
		All: standings.Stats{
			Played: row.AllPlayed,
			Win:    row.AllWin,
			Draw:   row.AllDraw,
			Lose:   row.AllLose,
			Goals:  standings.GoalTotals{For: row.AllGoalsFor, Against: row.AllGoalsAg},
		},
		Home: standings.Stats{
			Played: row.HomePlayed,
			Win:    row.HomeWin,
			Draw:   row.HomeDraw,
			Lose:   row.HomeLose,
			Goals:  standings.GoalTotals{For: row.HomeGoalsFor, Against: row.HomeGoalsAg},
		},
		Away: standings.Stats{
			Played: row.AwayPlayed,
			Win:    row.AwayWin,
			Draw:   row.AwayDraw,
			Lose:   row.AwayLose,
			Goals:  standings.GoalTotals{For: row.AwayGoalsFor, Against: row.AwayGoalsAg},
		},
		Update: row.SourceUpdate,
	}
}

type standingInsertModel struct {
	LeagueID     int64  `db:"league_id"`
	Season       int    `db:"season"`
	GroupOrd     int    `db:"group_ord"`
	GroupName    string `db:"group_name"`
	Rank         int    `db:"rank"`
	TeamID       int64  `db:"team_id"`
	TeamName     string `db:"team_name"`
	TeamLogo     string `db:"team_logo"`
	Points       int    `db:"points"`
	GoalsDiff    int    `db:"goals_diff"`
	Form         string `db:"form"`
	Status       string `db:"status"`
	Description  string `db:"description"`
	AllPlayed    int    `db:"all_played"`
	AllWin       int    `db:"all_win"`
	AllDraw      int    `db:"all_draw"`
	AllLose      int    `db:"all_lose"`
	AllGoalsFor  int    `db:"all_goals_for"`
	AllGoalsAg   int    `db:"all_goals_against"`
	HomePlayed   int    `db:"home_played"`
	HomeWin      int    `db:"home_win"`
	HomeDraw     int    `db:"home_draw"`
	HomeLose     int    `db:"home_lose"`
	HomeGoalsFor int    `db:"home_goals_for"`
	HomeGoalsAg  int    `db:"home_goals_against"`
	AwayPlayed   int    `db:"away_played"`
	AwayWin      int    `db:"away_win"`
	AwayDraw     int    `db:"away_draw"`
	AwayLose     int    `db:"away_lose"`
	AwayGoalsFor int    `db:"away_goals_for"`
	AwayGoalsAg  int    `db:"away_goals_against"`
	SourceUpdate string `db:"source_update"`
}

func toInsertModel(leagueID int64, season, groupOrd int, item standings.Standing) standingInsertModel {
	return standingInsertModel{
		LeagueID:     leagueID,
		Season:       season,
		GroupOrd:     groupOrd,
		GroupName:    item.Group,
		Rank:         item.Rank,
		TeamID:       item.Team.ID,
		TeamName:     item.Team.Name,
		TeamLogo:     item.Team.Logo,
		Points:       item.Points,
		GoalsDiff:    item.GoalsDiff,
		Form:         item.Form,
		Status:       item.Status,
		Description:  item.Description,
		AllPlayed:    item.All.Played,
		AllWin:       item.All.Win,
		AllDraw:      item.All.Draw,
		AllLose:      item.All.Lose,
		AllGoalsFor:  item.All.Goals.For,
		AllGoalsAg:   item.All.Goals.Against,
		HomePlayed:   item.Home.Played,
		HomeWin:      item.Home.Win,
		HomeDraw:     item.Home.Draw,
		HomeLose:     item.Home.Lose,
		HomeGoalsFor: item.Home.Goals.For,
		HomeGoalsAg:  item.Home.Goals.Against,
		AwayPlayed:   item.Away.Played,
		AwayWin:      item.Away.Win,
		AwayDraw:     item.Away.Draw,
		AwayLose:     item.Away.Lose,
		AwayGoalsFor: item.Away.Goals.For,
		AwayGoalsAg:  item.Away.Goals.Against,
		SourceUpdate: item.Update,
	}
}
