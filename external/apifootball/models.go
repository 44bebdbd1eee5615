package apifootball

import (
	"encoding/json"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// envelope is the shared API-Football response wrapper. The errors member is
// an empty array on success and an object of code->message on failure, so it
// is decoded lazily.
type envelope[T any] struct {
	Get      string          `json:"get"`
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response []T             `json:"response"`
}

func (e envelope[T]) errorMessages() []string {
	raw := strings.TrimSpace(string(e.Errors))
	if raw == "" || raw == "[]" || raw == "{}" || raw == "null" {
		return nil
	}

	var byCode map[string]string
	if err := sonic.Unmarshal(e.Errors, &byCode); err == nil {
		out := make([]string, 0, len(byCode))
		for code, message := range byCode {
			out = append(out, code+": "+message)
		}
		return out
	}

	var list []string
	if err := sonic.Unmarshal(e.Errors, &list); err == nil {
		return list
	}

	return []string{raw}
}

type leagueItem struct {
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Logo string `json:"logo"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
		Flag string `json:"flag"`
	} `json:"country"`
	Seasons []seasonItem `json:"seasons"`
}

type seasonItem struct {
	Year    int    `json:"year"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

type standingsItem struct {
	League struct {
		ID        int64            `json:"id"`
		Name      string           `json:"name"`
		Country   string           `json:"country"`
		Logo      string           `json:"logo"`
		Flag      string           `json:"flag"`
		Season    int              `json:"season"`
		Standings [][]standingItem `json:"standings"`
	} `json:"league"`
}

type standingItem struct {
	Rank int `json:"rank"`
	Team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Logo string `json:"logo"`
	} `json:"team"`
	Points      int        `json:"points"`
	GoalsDiff   int        `json:"goalsDiff"`
	Group       string     `json:"group"`
	Form        string     `json:"form"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	All         statsBlock `json:"all"`
	Home        statsBlock `json:"home"`
	Away        statsBlock `json:"away"`
	Update      string     `json:"update"`
}

type statsBlock struct {
	Played int `json:"played"`
	Win    int `json:"win"`
	Draw   int `json:"draw"`
	Lose   int `json:"lose"`
	Goals  struct {
		For     int `json:"for"`
		Against int `json:"against"`
	} `json:"goals"`
}
