package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a player identity. Users are immutable after creation and are
// referenced by sessions and moves by id only.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;index" validate:"required,min=1,max=64"`
	Icon      *string   `json:"icon" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that assigns an id when none was set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = generateUUID()
	}
	return nil
}
