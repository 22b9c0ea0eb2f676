package models

import (
	"time"
)

// Output is a generated study document (summary, study guide) in markdown.
type Output struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Output    string    `gorm:"type:text" json:"output"`
	Style     string    `gorm:"size:64" json:"style"`
	UserID    string    `gorm:"size:128;not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	Files     []File    `gorm:"many2many:output_file;joinForeignKey:output_id;joinReferences:file_id" json:"files,omitempty"`
}

// TableName overrides the table name for Output
func (Output) TableName() string {
	return "outputs"
}

// OwnerID implements Owned
func (o Output) OwnerID() string {
	return o.UserID
}
