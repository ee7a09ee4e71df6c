package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET "+cfg.metricsPath(), cfg.MetricsHandler)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, recorder MetricsRecorder) {
	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /v1/players", handler.ListRatingList},
		{"GET /v1/players/{playerID}", handler.GetPlayer},
		{"GET /v1/tournaments", handler.ListTournaments},
		{"GET /v1/tournaments/{tournamentID}", handler.GetTournament},
		{"GET /v1/tournaments/{tournamentID}/results", handler.ListResults},
		{"GET /v1/tournaments/{tournamentID}/fide-matches", handler.GetFideMatches},
	}
	for _, route := range routes {
		mux.Handle(route.pattern, Instrument(recorder, route.pattern, route.handler))
	}
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, recorder MetricsRecorder, adminToken string) {
	const refresh = "POST /v1/tournaments/{tournamentID}/fide-matches/refresh"
	mux.Handle(refresh, Instrument(recorder, refresh, RequireAdminToken(adminToken, http.HandlerFunc(handler.RefreshFideMatches))))
}
