package httpapi

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/leaguedesk/standings-api/internal/infrastructure/repository/memory"
	"github.com/leaguedesk/standings-api/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	standingRepo := memory.NewStandingRepository(memory.SeedStandings())

	handler := NewHandler(
		usecase.NewLeagueService(leagueRepo),
		usecase.NewStandingsService(leagueRepo, standingRepo),
		nil,
		slog.New(slog.DiscardHandler),
	)

	return NewRouter(handler, slog.New(slog.DiscardHandler), false, nil, "job-secret")
}

func doRequest(t *testing.T, router http.Handler, method, target string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response for %s %s: %v", method, target, err)
	}
	return rec, body
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if got, _ := data["status"].(string); got != "ok" {
		t.Fatalf("unexpected healthz payload: %v", body)
	}
}

func TestListLeaguesFiltersByCountry(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/leagues?country=England", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	items, _ := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 league for England, got %d", len(items))
	}
	item, _ := items[0].(map[string]any)
	if got, _ := item["name"].(string); got != "Premier League" {
		t.Fatalf("unexpected league: %v", item)
	}
}

func TestListLeaguesRejectsBadCurrentFlag(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet, "/v1/leagues?current=maybe", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetLeague(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/leagues/39", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if got, _ := data["country"].(string); got != "England" {
		t.Fatalf("unexpected league payload: %v", data)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/leagues/999999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown league, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/leagues/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for non-numeric league id, got %d", rec.Code)
	}
}

func TestGetLeagueStandings(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/leagues/39/standings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	data, _ := body["data"].(map[string]any)
	leagueObj, _ := data["league"].(map[string]any)
	if got, _ := leagueObj["id"].(float64); int64(got) != memory.LeagueIDPremierLeague {
		t.Fatalf("unexpected league in standings payload: %v", leagueObj)
	}

	groups, _ := data["groups"].([]any)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	rows, _ := groups[0].([]any)
	if len(rows) == 0 {
		t.Fatalf("expected standings rows, got none")
	}
	first, _ := rows[0].(map[string]any)
	if got, _ := first["rank"].(float64); got != 1 {
		t.Fatalf("expected first row rank 1, got %v", first["rank"])
	}
}

func TestGetLeagueStandingsUnknownSeason(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet, "/v1/leagues/39/standings?season=1990", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for missing season, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/leagues/39/standings?season=zero", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad season, got %d", rec.Code)
	}
}

func TestInternalSyncRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/internal/sync/standings", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without job token, got %d", rec.Code)
	}

	// Token accepted but no refresh service wired in this fixture.
	rec, body := doRequest(t, router, http.MethodPost, "/v1/internal/sync/standings", map[string]string{
		"X-Internal-Job-Token": "job-secret",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without refresh service, got %d", rec.Code)
	}
	errorObj, _ := body["error"].(map[string]any)
	message, _ := errorObj["message"].(string)
	if !strings.Contains(message, "refresh service") {
		t.Fatalf("unexpected error message: %q", message)
	}
}
