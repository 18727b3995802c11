package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity anchor behind a browser fingerprint. It is never
// mutated after creation.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Fingerprint string    `gorm:"size:64;not null;uniqueIndex" json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
	Apps        []App     `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
