package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"conciliations-server/src/config"
	"conciliations-server/src/db"
	"conciliations-server/src/handlers"
	"conciliations-server/src/middleware"
	"conciliations-server/src/util"
)

func NewRouter(reg *db.Registry, cfg config.Config, actionLog *util.ActionLog) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.ReadOnlyMiddleware(cfg.ReadOnly))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(cfg))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			r.Get("/transactions", handlers.GetTransactions(reg, cfg))
			r.Post("/transactions/conciliation", handlers.SetConciliation(reg, actionLog))

			// Filter widget options
			r.Get("/filters/product-accounts", handlers.GetProductAccountOptions(reg))
			r.Get("/filters/organizations", handlers.GetOrganizationOptions(reg))
		})
	})

	return r
}
