package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-portal/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/home", handler.Home)
	mux.HandleFunc("GET /api/articles", handler.ListArticles)
	mux.HandleFunc("GET /api/articles/{slug}", handler.GetArticle)
	mux.HandleFunc("GET /api/categories", handler.ListCategories)
	mux.HandleFunc("GET /api/categories/{slug}/articles", handler.ListCategoryArticles)
	mux.HandleFunc("GET /api/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /api/leagues/{id}", handler.GetLeague)
	mux.HandleFunc("GET /api/matches/{id}", handler.GetMatch)
	mux.HandleFunc("GET /api/teams/{id}", handler.GetTeam)
	mux.HandleFunc("GET /api/players/{id}", handler.GetPlayer)
	mux.HandleFunc("GET /api/live", handler.Live)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /api/auth/login", handler.Login)
	mux.Handle("POST /api/auth/logout", RequireAuth(verifier, http.HandlerFunc(handler.Logout)))
	mux.Handle("GET /api/auth/me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	for _, route := range handler.adminRoutes {
		guard := func(next http.HandlerFunc) http.Handler {
			return RequireAuth(verifier, RequireRole(next, route.roles...))
		}
		base := adminRoutePath(route)
		mux.Handle("GET "+base, guard(handler.AdminList(route.resource)))
		mux.Handle("POST "+base, guard(handler.AdminCreate(route.resource)))
		mux.Handle("GET "+base+"/{id}", guard(handler.AdminGet(route.resource)))
		mux.Handle("PUT "+base+"/{id}", guard(handler.AdminUpdate(route.resource)))
		mux.Handle("DELETE "+base+"/{id}", guard(handler.AdminDelete(route.resource)))
	}

	editor := func(next http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireRole(next, user.RoleAdmin, user.RoleEditor))
	}
	if handler.matchAdminService != nil {
		mux.Handle("POST /api/admin/matches/{id}/events", editor(handler.AddMatchEvent))
		mux.Handle("PUT /api/admin/matches/{id}/lineups", editor(handler.ReplaceMatchLineup))
	}
	if handler.matchSyncService != nil {
		mux.Handle("POST /api/admin/sync/fixtures", editor(handler.SyncFixtures))
	}
	if handler.maintenanceService != nil {
		mux.Handle("POST /api/admin/cache/sweep", RequireAuth(verifier, RequireRole(http.HandlerFunc(handler.SweepCache), user.RoleAdmin)))
	}
}
