package models

import (
	"time"
)

// Exercise types produced by the generation service.
const (
	ExerciseTypeMultipleChoice = "multiple_choice"
	ExerciseTypeEssayQuestion  = "essay_question"
	ExerciseTypeStream         = "stream"
)

// Exercise holds one generated exercise set. Response is the serialized
// generation result, opaque to the persistence layer.
type Exercise struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Response     JSON      `json:"response"`
	ExerciseType string    `gorm:"size:32;not null" json:"exerciseType"`
	Difficulty   string    `gorm:"size:32" json:"difficulty"`
	UserID       string    `gorm:"size:128;not null;index" json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	Files        []File    `gorm:"many2many:exercise_file;joinForeignKey:exercise_id;joinReferences:file_id" json:"files,omitempty"`
}

// ExerciseUserAnswer is one user's submitted answers for an exercise, together
// with the scoring results computed for the submission.
type ExerciseUserAnswer struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ExerciseID     uint64    `gorm:"not null;index" json:"exerciseId"`
	UserID         string    `gorm:"size:128;not null;index" json:"userId"`
	Answer         JSON      `json:"answer"`
	ScoringResults JSON      `json:"scoringResults"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TableName overrides the table name for Exercise
func (Exercise) TableName() string {
	return "exercises"
}

// TableName overrides the table name for ExerciseUserAnswer
func (ExerciseUserAnswer) TableName() string {
	return "exercise_user_answers"
}

// OwnerID implements Owned
func (e Exercise) OwnerID() string {
	return e.UserID
}

// OwnerID implements Owned
func (a ExerciseUserAnswer) OwnerID() string {
	return a.UserID
}
