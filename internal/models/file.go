package models

import (
	"time"
)

// File is the metadata row for an uploaded object. The bytes live in object
// storage under ObjectKey; a row is read-only after creation except for deletion.
type File struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FileName    string    `gorm:"size:512;not null" json:"fileName"`
	FileSize    int64     `gorm:"not null" json:"fileSize"`
	ContentType string    `gorm:"size:255" json:"contentType"`
	ObjectKey   string    `gorm:"uniqueIndex;size:512;not null" json:"-"`
	UserID      string    `gorm:"size:128;not null;index" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for File
func (File) TableName() string {
	return "files"
}

// OwnerID implements Owned
func (f File) OwnerID() string {
	return f.UserID
}
