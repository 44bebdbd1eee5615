package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/leaguedesk/standings-api/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	standingsService *usecase.StandingsService
	refreshService   *usecase.RefreshService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	standingsService *usecase.StandingsService,
	refreshService *usecase.RefreshService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		standingsService: standingsService,
		refreshService:   refreshService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	filter := usecase.LeagueFilter{
		Country: strings.TrimSpace(r.URL.Query().Get("country")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("current")); raw != "" {
		current, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: current must be a boolean, got %q", usecase.ErrInvalidInput, raw))
			return
		}
		filter.Current = &current
	}

	leagues, err := h.leagueService.ListLeagues(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(ctx, l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID, err := parseLeagueID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item))
}

func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStandings")
	defer span.End()

	leagueID, err := parseLeagueID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	season := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("season")); raw != "" {
		season, err = strconv.Atoi(raw)
		if err != nil || season <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: season must be a positive integer, got %q", usecase.ErrInvalidInput, raw))
			return
		}
	}

	table, err := h.standingsService.GetByLeague(ctx, leagueID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "league_id", leagueID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, table))
}

// RunRefreshStandingsJob handles the job queue callback and the direct
// internal sync endpoint. Both carry the same payload.
func (h *Handler) RunRefreshStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshStandingsJob")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: refresh service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req refreshStandingsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refreshService.RefreshStandings(ctx, usecase.RefreshInput{
		LeagueIDs: req.LeagueIDs,
		Season:    req.Season,
		DryRun:    req.DryRun,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "refresh standings job failed", "league_ids", req.LeagueIDs, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRefreshLeaguesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshLeaguesJob")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: refresh service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req refreshLeaguesRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	upserted, err := h.refreshService.RefreshLeagues(ctx, req.Country, req.CurrentOnly)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh leagues job failed", "country", req.Country, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refreshLeaguesResponse{Upserted: upserted})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseLeagueID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("leagueID"))
	leagueID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || leagueID <= 0 {
		return 0, fmt.Errorf("%w: league id must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return leagueID, nil
}

func decodeJSONBody(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
