package auth

import "time"

// User is an editor account. Accounts are created out of band (cmd/seed);
// there is no registration endpoint.
type User struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"-"`
	Username       string    `gorm:"not null" json:"username"`
	HashedPassword string    `gorm:"not null" json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Session maps a cookie-held id to an authenticated user. ExpiresAt
// slides forward on every request that presents the cookie.
type Session struct {
	ID        string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (User) TableName() string    { return "accounts.users" }
func (Session) TableName() string { return "accounts.sessions" }
