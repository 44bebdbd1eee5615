package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetLeagueStandings)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshStandingsJob)))
	mux.Handle("POST /v1/internal/sync/standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshStandingsJob)))
	mux.Handle("POST /v1/internal/sync/leagues", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshLeaguesJob)))
}
