package comments

import (
	"gorm.io/gorm"

	"github.com/newsroomhq/newsroom-backend/internal/db"
)

// Init creates the newsroom schema and the comments table.
func Init(gdb *gorm.DB) error {
	if err := db.EnsureSchema(gdb, "newsroom"); err != nil {
		return err
	}
	return gdb.AutoMigrate(&Comment{})
}
