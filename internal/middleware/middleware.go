// Package middleware holds the HTTP middleware chain: session loading,
// the auth guard, CORS, and login throttling.
package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/newsroomhq/newsroom-backend/internal/httperr"
)

// SessionCookie is the name of the cookie carrying the session id.
const SessionCookie = "session_id"

// SessionData is what the session store hands back for a session id.
type SessionData struct {
	UserID    string
	ExpiresAt time.Time
}

// SessionFetcher is implemented by the session store.
type SessionFetcher interface {
	FindSessionByID(id string) (SessionData, error)
	// TouchSession slides the session's expiry forward by the store's TTL.
	TouchSession(id string) error
}

// Session attaches the session's user id to the request context when the
// session cookie maps to a live session, and slides the expiry window
// (server record and cookie both). Requests without a usable session
// continue anonymously; RequireAuth decides which routes need one.
func Session(fetcher SessionFetcher, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			session, err := fetcher.FindSessionByID(cookie.Value)
			if err != nil || session.ExpiresAt.Before(time.Now()) {
				next.ServeHTTP(w, r)
				return
			}

			if err := fetcher.TouchSession(cookie.Value); err == nil {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    cookie.Value,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), session.UserID)))
		})
	}
}

// RequireAuth aborts with 401 unless the session middleware attached an
// authenticated user id.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			httperr.Respond(w, httperr.Unauthorized("User Not Authenticated"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORS echoes the origin back only if it's on the allow-list, and answers
// preflight requests.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin") // important for caches
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies a per-client-IP token bucket. Wired on the login
// route to slow down credential guessing.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		lim, ok := limiters[ip]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[ip] = lim
		}
		return lim
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiterFor(ip).Allow() {
				httperr.Respond(w, httperr.New(http.StatusTooManyRequests, "Too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
