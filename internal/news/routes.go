package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newsroomhq/newsroom-backend/internal/httperr"
	"github.com/newsroomhq/newsroom-backend/internal/middleware"
)

// SetupRoutes returns the handler mounted at /news. Mutations sit behind
// the auth guard; fixed paths are registered before the {newsId} catch-all.
func SetupRoutes(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Get("/", httperr.Handler(h.List))
	r.Get("/user", httperr.Handler(h.ListPublished))
	r.Get("/category", httperr.Handler(h.ListByCategory))
	r.Get("/count", httperr.Handler(h.Count))
	r.Get("/search", httperr.Handler(h.Search))
	r.Get("/{newsId}", httperr.Handler(h.Get))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", httperr.Handler(h.Create))
		r.Patch("/{newsId}", httperr.Handler(h.Update))
		r.Delete("/{newsId}", httperr.Handler(h.Delete))
	})

	return r
}
