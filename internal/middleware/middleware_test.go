package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/newsroomhq/newsroom-backend/internal/middleware"
)

// mockFetcher implements middleware.SessionFetcher without any database
// dependency.
type mockFetcher struct {
	session middleware.SessionData
	err     error
	touched []string
}

func (m *mockFetcher) FindSessionByID(id string) (middleware.SessionData, error) {
	return m.session, m.err
}

func (m *mockFetcher) TouchSession(id string) error {
	m.touched = append(m.touched, id)
	return nil
}

// echoUser is an inner handler that reports whether a userID reached the
// context.
func echoUser(t *testing.T, wantUserID string, wantAuthed bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if ok != wantAuthed {
			t.Errorf("authenticated=%v in context, want %v", ok, wantAuthed)
		}
		if wantAuthed && userID != wantUserID {
			t.Errorf("userID in context = %q, want %q", userID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func runSession(fetcher middleware.SessionFetcher, inner http.Handler, cookie string) *httptest.ResponseRecorder {
	handler := middleware.Session(fetcher, time.Hour)(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// A request without a cookie continues anonymously; only RequireAuth
// turns that into a 401.
func TestSessionMissingCookie(t *testing.T) {
	rec := runSession(&mockFetcher{}, echoUser(t, "", false), "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestSessionUnknownID(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("record not found")}
	rec := runSession(fetcher, echoUser(t, "", false), "nonexistent-session-id")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(fetcher.touched) != 0 {
		t.Errorf("unknown session must not be touched, got %v", fetcher.touched)
	}
}

func TestSessionExpired(t *testing.T) {
	fetcher := &mockFetcher{
		session: middleware.SessionData{
			UserID:    "some-user",
			ExpiresAt: time.Now().Add(-1 * time.Hour),
		},
	}
	rec := runSession(fetcher, echoUser(t, "", false), "expired-session-id")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(fetcher.touched) != 0 {
		t.Errorf("expired session must not be touched, got %v", fetcher.touched)
	}
}

func TestSessionValid(t *testing.T) {
	const wantUserID = "test-user-123"
	fetcher := &mockFetcher{
		session: middleware.SessionData{
			UserID:    wantUserID,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}

	rec := runSession(fetcher, echoUser(t, wantUserID, true), "valid-session-id")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if len(fetcher.touched) != 1 || fetcher.touched[0] != "valid-session-id" {
		t.Errorf("expected expiry slide for valid-session-id, got %v", fetcher.touched)
	}

	// Sliding expiration re-issues the cookie.
	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == middleware.SessionCookie && c.Value == "valid-session-id" && c.MaxAge > 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected refreshed %s cookie, got %v", middleware.SessionCookie, cookies)
	}
}

func TestRequireAuthNoUser(t *testing.T) {
	handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/news", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "User Not Authenticated") {
		t.Errorf("expected body to contain %q, got %q", "User Not Authenticated", body)
	}
}

func TestRequireAuthWithUser(t *testing.T) {
	handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/news", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimitBurst(t *testing.T) {
	handler := middleware.RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request should be limited, got %v", codes)
	}

	// A different client IP gets its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected fresh bucket for new IP, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := middleware.CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/news", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
}

func TestCORSUnknownOrigin(t *testing.T) {
	handler := middleware.CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unknown origin must not be echoed, got %q", got)
	}
}
