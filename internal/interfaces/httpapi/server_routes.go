package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/portrait", handler.GetPlayerPortrait)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/auction/current", handler.GetCurrentLot)
	mux.HandleFunc("GET /v1/auction/history", handler.ListHistory)
	mux.HandleFunc("GET /v1/auction/stats", handler.GetStats)
	mux.HandleFunc("GET /v1/roster/export", handler.ExportRoster)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	guard := func(next http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, next)
	}

	mux.Handle("POST /v1/players", guard(handler.CreatePlayer))
	mux.Handle("PUT /v1/players/{playerID}", guard(handler.UpdatePlayer))
	mux.Handle("DELETE /v1/players/{playerID}", guard(handler.DeletePlayer))

	mux.Handle("POST /v1/teams", guard(handler.CreateTeam))
	mux.Handle("PUT /v1/teams/{teamID}", guard(handler.UpdateTeam))
	mux.Handle("DELETE /v1/teams/{teamID}", guard(handler.DeleteTeam))

	mux.Handle("POST /v1/auction/select", guard(handler.SelectPlayer))
	mux.Handle("POST /v1/auction/next", guard(handler.NextPlayer))
	mux.Handle("POST /v1/auction/bid", guard(handler.PlaceBid))
	mux.Handle("POST /v1/auction/sold", guard(handler.SellPlayer))
	mux.Handle("POST /v1/auction/unsold", guard(handler.MarkUnsold))
	mux.Handle("POST /v1/auction/reset", guard(handler.ResetAuction))

	mux.Handle("POST /v1/roster/import", guard(handler.ImportRoster))
}
