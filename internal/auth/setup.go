package auth

import (
	"gorm.io/gorm"

	"github.com/newsroomhq/newsroom-backend/internal/db"
)

// Init creates the accounts schema and tables.
func Init(gdb *gorm.DB) error {
	if err := db.EnsureSchema(gdb, "accounts"); err != nil {
		return err
	}
	return gdb.AutoMigrate(&User{}, &Session{})
}
