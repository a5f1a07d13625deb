package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/services/oauth2/token", h.issueToken)
		r.Get("/api/version", h.getServerVersion)
	})

	// versioned data API, bearer token required
	router.Route("/services/data/v{apiVersion}", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/query", h.query)
		r.Get("/query/{locator}", h.queryMore)
		r.Get("/search", h.search)

		r.Get("/sobjects/{objectType}", h.recentItems)
		r.Post("/sobjects/{objectType}", h.createObject)
		r.Patch("/sobjects/{objectType}/{id}", h.updateObject)
		r.Delete("/sobjects/{objectType}/{id}", h.deleteObject)
	})

	return router
}
