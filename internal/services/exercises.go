package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/types"
)

// CreateExercise persists an exercise and its file associations. The parent
// row is flushed first so the association rows always reference a live key.
func CreateExercise(db *gorm.DB, exercise *models.Exercise, files []models.File) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Files").Create(exercise).Error; err != nil {
			return err
		}
		if len(files) == 0 {
			return nil
		}
		return tx.Model(exercise).Association("Files").Append(&files)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return nil
}

// ListExercises returns the caller's exercises, newest first, without the
// response payload column to keep list responses small.
func ListExercises(db *gorm.DB, userID string) ([]models.Exercise, error) {
	var exercises []models.Exercise
	err := db.Omit("Response").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&exercises).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return exercises, nil
}

// GetExercise fetches one exercise with its files, after an ownership check.
func GetExercise(db *gorm.DB, id uint64, userID string) (*models.Exercise, error) {
	exercise, err := GetOwned[models.Exercise](db, id, userID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&exercise).Association("Files").Find(&exercise.Files); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return &exercise, nil
}

// DeleteExercise deletes an exercise and its association rows after an
// ownership check. User answers for the exercise are removed in the same
// transaction.
func DeleteExercise(db *gorm.DB, id uint64, userID string) error {
	exercise, err := GetOwned[models.Exercise](db, id, userID)
	if err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exercise_id = ?", exercise.ID).Delete(&models.ExerciseUserAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&exercise).Association("Files").Clear(); err != nil {
			return err
		}
		return tx.Delete(&exercise).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return nil
}

// SaveExerciseAnswer records a user's submission for an owned exercise.
func SaveExerciseAnswer(db *gorm.DB, exerciseID uint64, userID string, answer, scoring models.JSON) (*models.ExerciseUserAnswer, error) {
	if _, err := GetOwned[models.Exercise](db, exerciseID, userID); err != nil {
		return nil, err
	}
	row := models.ExerciseUserAnswer{
		ExerciseID:     exerciseID,
		UserID:         userID,
		Answer:         answer,
		ScoringResults: scoring,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return &row, nil
}

// ListExerciseAnswers returns the caller's submissions for one owned exercise.
func ListExerciseAnswers(db *gorm.DB, exerciseID uint64, userID string) ([]models.ExerciseUserAnswer, error) {
	if _, err := GetOwned[models.Exercise](db, exerciseID, userID); err != nil {
		return nil, err
	}
	var rows []models.ExerciseUserAnswer
	err := db.Where("exercise_id = ? AND user_id = ?", exerciseID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}
	return rows, nil
}
