package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// App is a link entry owned by exactly one User.
type App struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	URL           string     `gorm:"column:url;size:500;not null" json:"url"`
	IconURL       string     `gorm:"column:icon_url;size:500" json:"icon_url"`
	Description   string     `gorm:"type:text" json:"description"`
	IsPublic      bool       `gorm:"not null;index" json:"is_public"`
	ClickCount    int64      `gorm:"not null;default:0" json:"click_count"`
	LastAccessed  *time.Time `json:"last_accessed"`
	PreviewURL    string     `gorm:"column:preview_url;size:500" json:"preview_url"`
	IsHealthy     bool       `gorm:"not null" json:"is_healthy"`
	HealthCheckAt *time.Time `json:"health_check_at"`
	Tags          Tags       `gorm:"type:text" json:"tags"`
	CreatorID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"creator_id"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (a *App) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (App) TableName() string {
	return "apps"
}

// OwnedBy reports whether userID is the App's creator.
func (a *App) OwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && a.CreatorID == userID
}
