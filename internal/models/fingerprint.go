package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrowserFingerprint keeps the raw client signals behind a fingerprint hash.
// UserID is nil when the owning user has been deleted. Signal columns are
// unbounded text; clients may send any length.
type BrowserFingerprint struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FingerprintHash   string     `gorm:"size:64;not null;uniqueIndex" json:"fingerprint_hash"`
	UserAgent         string     `gorm:"type:text" json:"user_agent"`
	ScreenResolution  string     `gorm:"type:text" json:"screen_resolution"`
	Timezone          string     `gorm:"type:text" json:"timezone"`
	Language          string     `gorm:"type:text" json:"language"`
	Platform          string     `gorm:"type:text" json:"platform"`
	Plugins           string     `gorm:"type:text" json:"-"`
	CanvasFingerprint string     `gorm:"type:text" json:"-"`
	WebGLFingerprint  string     `gorm:"column:webgl_fingerprint;type:text" json:"-"`
	UserID            *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User              *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (f *BrowserFingerprint) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (BrowserFingerprint) TableName() string {
	return "fingerprints"
}
