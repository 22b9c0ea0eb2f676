package models

import (
	"time"
)

// Answer is one question-response pair saved from a practice session.
type Answer struct {
	ID                 uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title              string    `gorm:"size:255" json:"title"`
	RelatedFiles       JSON      `json:"relatedFiles"`
	QuestionID         string    `gorm:"size:64" json:"questionId"`
	Question           string    `gorm:"type:text;not null" json:"question"`
	Choices            JSON      `json:"choices"`
	UserSelectedChoice string    `gorm:"type:text" json:"userSelectedChoice"`
	CorrectChoice      string    `gorm:"type:text" json:"correctChoice"`
	IsCorrect          bool      `json:"isCorrect"`
	Explanation        string    `gorm:"type:text" json:"explanation"`
	UserID             string    `gorm:"size:128;not null;index" json:"userId"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Answer
func (Answer) TableName() string {
	return "answers"
}

// OwnerID implements Owned
func (a Answer) OwnerID() string {
	return a.UserID
}
