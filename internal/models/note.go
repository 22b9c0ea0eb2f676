package models

import (
	"time"
)

// Note is a user-authored text note
type Note struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	UserID    string    `gorm:"size:128;not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Note
func (Note) TableName() string {
	return "notes"
}

// OwnerID implements Owned
func (n Note) OwnerID() string {
	return n.UserID
}
