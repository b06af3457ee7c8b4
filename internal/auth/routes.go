package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newsroomhq/newsroom-backend/internal/httperr"
)

// SetupRoutes returns the handler mounted at /users. loginLimit throttles
// credential guessing on the login route only.
func SetupRoutes(h *Handlers, loginLimit func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", httperr.Handler(h.CurrentUser))
	r.Get("/logout", httperr.Handler(h.Logout))
	r.With(loginLimit).Post("/login", httperr.Handler(h.Login))

	return r
}
