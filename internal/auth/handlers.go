package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/newsroomhq/newsroom-backend/internal/httperr"
	"github.com/newsroomhq/newsroom-backend/internal/middleware"
)

type Handlers struct {
	db       *gorm.DB
	sessions *SessionStore
}

func NewHandlers(db *gorm.DB, sessions *SessionStore) *Handlers {
	return &Handlers{db: db, sessions: sessions}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the current-user payload. Email is hidden on the model
// by default; this endpoint is the one place it is exposed.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Login verifies credentials and opens a session. Lookup failure and a
// wrong password answer identically so the response doesn't leak which
// emails exist.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) error {
	var in loginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return httperr.BadRequest("Invalid request body")
	}
	if in.Email == "" || in.Password == "" {
		return httperr.BadRequest("Parameter missing")
	}

	var user User
	if err := h.db.First(&user, "email = ?", in.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.Unauthorized("Invalid Credentials")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(in.Password)); err != nil {
		return httperr.Unauthorized("Invalid Credentials")
	}

	session, err := h.sessions.Create(user.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httperr.JSON(w, http.StatusCreated, map[string]string{"message": "Login Successful"})
	return nil
}

// Logout destroys the session record and expires the cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := h.sessions.Destroy(cookie.Value); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusOK)
	return nil
}

// CurrentUser returns the session's user, email included, or null when
// the request carries no authenticated session.
func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) error {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httperr.JSON(w, http.StatusOK, nil)
		return nil
	}

	var user User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.JSON(w, http.StatusOK, nil)
			return nil
		}
		return err
	}

	httperr.JSON(w, http.StatusOK, userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	return nil
}
