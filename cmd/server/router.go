package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mnemosyne-app/retain-api/internal/api"
	"github.com/mnemosyne-app/retain-api/internal/api/middleware"
	"github.com/mnemosyne-app/retain-api/internal/api/shared"
)

// routerDeps bundles the handlers the router mounts.
type routerDeps struct {
	review   *api.ReviewHandler
	study    *api.StudyHandler
	progress *api.ProgressHandler
}

// newRouter builds the chi router with the API routes and the shared
// middleware chain. Every /api route requires an identified user.
func newRouter(deps routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.IdentityMiddleware)

		r.Get("/decks/{deckID}/queue", deps.study.GetQueue)
		r.Post("/cards/{id}/review", deps.review.RecordReview)
		r.Get("/progress/decks/{deckID}", deps.progress.GetDeckProgress)
		r.Get("/progress/account", deps.progress.GetAccountProgress)
	})

	return r
}
