package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newsroomhq/newsroom-backend/internal/httperr"
	"github.com/newsroomhq/newsroom-backend/internal/middleware"
)

// SetupRoutes returns the handler mounted at /comments. Creating a
// comment is open to anyone; only deletion needs a session.
func SetupRoutes(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Get("/", httperr.Handler(h.ListByNews))
	r.Get("/count", httperr.Handler(h.Count))
	r.Get("/{commentId}", httperr.Handler(h.Get))
	r.Post("/", httperr.Handler(h.Create))
	r.With(middleware.RequireAuth).Delete("/{commentId}", httperr.Handler(h.Delete))

	return r
}
