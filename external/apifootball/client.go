package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/leaguedesk/standings-api/internal/domain/league"
	"github.com/leaguedesk/standings-api/internal/domain/standings"
	"github.com/leaguedesk/standings-api/internal/platform/logging"
	"github.com/leaguedesk/standings-api/internal/platform/params"
	"github.com/leaguedesk/standings-api/internal/platform/resilience"
	"github.com/leaguedesk/standings-api/internal/usecase"
)

const defaultBaseURL = "https://v3.football.api-sports.io"

var apiKeyHeaderRegex = regexp.MustCompile(`(?i)x-apisports-key:\s*[^\s"']+`)
var errProviderTransient = crerr.New("football data provider transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchLeagues lists leagues matching the given filters. Fields left unset in
// the record are stripped before the request goes out; defined-but-empty
// values are sent as-is because the provider treats them as meaningful.
func (c *Client) FetchLeagues(ctx context.Context, query params.Record) ([]league.League, error) {
	var envelope envelope[leagueItem]
	if err := c.doJSON(ctx, "/leagues", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch leagues: %w", err)
	}

	out := make([]league.League, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.League.ID <= 0 {
			continue
		}
		season := pickSeason(item.Seasons)
		out = append(out, league.League{
			ID:          item.League.ID,
			Name:        strings.TrimSpace(item.League.Name),
			Country:     strings.TrimSpace(item.Country.Name),
			Logo:        strings.TrimSpace(item.League.Logo),
			Flag:        strings.TrimSpace(item.Country.Flag),
			Season:      season.Year,
			SeasonStart: season.Start,
			SeasonEnd:   season.End,
			Current:     season.Current,
		})
	}

	return out, nil
}

// FetchStandings loads the standings table for one league season. The result
// preserves the provider's group partitioning and row order.
func (c *Client) FetchStandings(ctx context.Context, leagueID int64, season int) (standings.LeagueStanding, error) {
	if leagueID <= 0 {
		return standings.LeagueStanding{}, fmt.Errorf("%w: league id must be greater than zero", usecase.ErrInvalidInput)
	}
	if season <= 0 {
		return standings.LeagueStanding{}, fmt.Errorf("%w: season must be greater than zero", usecase.ErrInvalidInput)
	}

	query := params.New().
		With("league", params.Int(leagueID)).
		With("season", params.Int(int64(season)))

	var envelope envelope[standingsItem]
	if err := c.doJSON(ctx, "/standings", query, &envelope); err != nil {
		return standings.LeagueStanding{}, fmt.Errorf("fetch standings league_id=%d season=%d: %w", leagueID, season, err)
	}
	if len(envelope.Response) == 0 {
		return standings.LeagueStanding{}, fmt.Errorf("%w: no standings for league_id=%d season=%d", usecase.ErrNotFound, leagueID, season)
	}

	return mapStandingsItem(envelope.Response[0]), nil
}

func mapStandingsItem(item standingsItem) standings.LeagueStanding {
	groups := make([][]standings.Standing, 0, len(item.League.Standings))
	for _, rows := range item.League.Standings {
		group := make([]standings.Standing, 0, len(rows))
		for _, row := range rows {
			group = append(group, standings.Standing{
				Rank: row.Rank,
				Team: standings.TeamRef{
					ID:   row.Team.ID,
					Name: strings.TrimSpace(row.Team.Name),
					Logo: strings.TrimSpace(row.Team.Logo),
				},
				Points:      row.Points,
				GoalsDiff:   row.GoalsDiff,
				Group:       strings.TrimSpace(row.Group),
				Form:        strings.TrimSpace(row.Form),
				Status:      strings.TrimSpace(row.Status),
				Description: strings.TrimSpace(row.Description),
				All:         mapStatsBlock(row.All),
				Home:        mapStatsBlock(row.Home),
				Away:        mapStatsBlock(row.Away),
				Update:      strings.TrimSpace(row.Update),
			})
		}
		groups = append(groups, group)
	}

	return standings.LeagueStanding{
		League: league.League{
			ID:      item.League.ID,
			Name:    strings.TrimSpace(item.League.Name),
			Country: strings.TrimSpace(item.League.Country),
			Logo:    strings.TrimSpace(item.League.Logo),
			Flag:    strings.TrimSpace(item.League.Flag),
			Season:  item.League.Season,
		},
		Groups: groups,
	}
}

func mapStatsBlock(block statsBlock) standings.Stats {
	return standings.Stats{
		Played: block.Played,
		Win:    block.Win,
		Draw:   block.Draw,
		Lose:   block.Lose,
		Goals: standings.GoalTotals{
			For:     block.Goals.For,
			Against: block.Goals.Against,
		},
	}
}

// pickSeason prefers the season flagged current, falling back to the latest
// year in the list.
func pickSeason(seasons []seasonItem) seasonItem {
	var latest seasonItem
	for _, s := range seasons {
		if s.Current {
			return s
		}
		if s.Year > latest.Year {
			latest = s
		}
	}
	return latest
}

func (c *Client) doJSON(ctx context.Context, path string, query params.Record, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	encoded := params.BuildQuery(query).QueryString()
	fullURL := c.baseURL + path
	if encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + encoded
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errProviderTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	if messages := envelopeErrors(target); len(messages) > 0 {
		return fmt.Errorf("provider reported errors: %s", strings.Join(messages, "; "))
	}

	return nil
}

func envelopeErrors(target any) []string {
	switch typed := target.(type) {
	case *envelope[leagueItem]:
		return typed.errorMessages()
	case *envelope[standingsItem]:
		return typed.errorMessages()
	default:
		return nil
	}
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-apisports-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errProviderTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errProviderTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyHeaderRegex.ReplaceAllString(value, "x-apisports-key: REDACTED")
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests || status == http.StatusRequestTimeout {
		return true
	}
	return status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 512
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
