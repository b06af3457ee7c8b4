package news

import "time"

// Closed category and status sets. Handlers accept the values as-is past
// the type boundary; the constants are the vocabulary clients use.
const (
	CategoryPolitics = "politics"
	CategorySports   = "sports"
	CategoryHealth   = "health"
	CategoryBusiness = "business"
	CategoryTravel   = "travel"

	StatusPublished = "published"
	StatusDrafted   = "drafted"
)

// News is an article. CreatedBy and EditedBy are username snapshots taken
// at write time, not foreign keys.
type News struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Category  string    `gorm:"index" json:"category"`
	Status    string    `gorm:"index" json:"status"`
	CreatedBy string    `json:"createdBy"`
	EditedBy  string    `json:"editedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (News) TableName() string { return "newsroom.news" }
