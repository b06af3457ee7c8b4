package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/newsroomhq/newsroom-backend/internal/middleware"
)

// SessionStore persists sessions in postgres and satisfies
// middleware.SessionFetcher.
type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionStore(db *gorm.DB, ttl time.Duration) *SessionStore {
	return &SessionStore{db: db, ttl: ttl}
}

func (s *SessionStore) TTL() time.Duration { return s.ttl }

func (s *SessionStore) FindSessionByID(id string) (middleware.SessionData, error) {
	var session Session
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		return middleware.SessionData{}, err
	}
	return middleware.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// TouchSession slides the expiry window forward by the store TTL.
func (s *SessionStore) TouchSession(id string) error {
	return s.db.Model(&Session{}).Where("id = ?", id).
		Update("expires_at", time.Now().Add(s.ttl)).Error
}

// Create opens a fresh session for userID and returns it.
func (s *SessionStore) Create(userID string) (Session, error) {
	session := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return Session{}, err
	}
	return session, nil
}

// Destroy removes the session record. Destroying an unknown id is not an
// error.
func (s *SessionStore) Destroy(id string) error {
	return s.db.Delete(&Session{}, "id = ?", id).Error
}
