package models

import (
	"time"
)

// User is a profile record keyed by the identity-provider subject. Authentication
// itself is delegated to the identity provider; no credentials are stored here.
type User struct {
	UID        string    `gorm:"primaryKey;size:128" json:"uid"`
	Name       string    `gorm:"size:255" json:"name"`
	Email      string    `gorm:"uniqueIndex;size:255" json:"email"`
	PictureURL string    `gorm:"size:512" json:"pictureUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
