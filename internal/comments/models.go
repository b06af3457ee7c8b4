package comments

import "time"

// Comment belongs to a news article by id only. Nothing enforces that the
// article exists at create time; the cascade on article deletion is the
// only cleanup.
type Comment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	NewsID    string    `gorm:"not null;index" json:"newsId"`
	Comment   string    `gorm:"not null" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string { return "newsroom.comments" }
