package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/types"
)

// NoteInput is the request body for creating or updating a note.
type NoteInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
}

// CreateNote persists a new note for the caller.
func CreateNote(db *gorm.DB, userID string, in NoteInput) (*models.Note, error) {
	note := models.Note{
		Title:   in.Title,
		Content: in.Content,
		UserID:  userID,
	}
	if err := db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return &note, nil
}

// ListNotes returns the caller's notes, newest first.
func ListNotes(db *gorm.DB, userID string) ([]models.Note, error) {
	var notes []models.Note
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return notes, nil
}

// GetNote fetches one note with an ownership check.
func GetNote(db *gorm.DB, id uint64, userID string) (*models.Note, error) {
	note, err := GetOwned[models.Note](db, id, userID)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote applies an update to an owned note. UpdatedAt advances with the
// write; CreatedAt is untouched.
func UpdateNote(db *gorm.DB, id uint64, userID string, in NoteInput) (*models.Note, error) {
	note, err := GetOwned[models.Note](db, id, userID)
	if err != nil {
		return nil, err
	}
	note.Title = in.Title
	note.Content = in.Content
	if err := db.Save(&note).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return &note, nil
}

// DeleteNote deletes a single note after an ownership check.
func DeleteNote(db *gorm.DB, id uint64, userID string) error {
	return DeleteOwned[models.Note](db, id, userID)
}
