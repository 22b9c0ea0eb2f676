package services_test

import (
	"errors"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/types"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.File{},
		&models.Note{},
		&models.Exercise{},
		&models.ExerciseUserAnswer{},
		&models.Output{},
		&models.Answer{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedAnswer(t *testing.T, db *gorm.DB, userID, question string) models.Answer {
	t.Helper()
	a := models.Answer{
		Question: question,
		UserID:   userID,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("Failed to seed answer: %v", err)
	}
	return a
}

func TestSaveAnswers(t *testing.T) {
	db := setupTestDB(t)

	inputs := []services.AnswerInput{
		{Question: "What is 2+2?", CorrectChoice: "4", IsCorrect: true},
		{Question: "Capital of France?", CorrectChoice: "Paris"},
	}

	answers, err := services.SaveAnswers(db, "user-1", inputs)
	if err != nil {
		t.Fatalf("SaveAnswers failed: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("Expected 2 answers, got %d", len(answers))
	}
	for _, a := range answers {
		if a.ID == 0 {
			t.Error("Expected assigned ID on saved answer")
		}
		if a.UserID != "user-1" {
			t.Errorf("Expected owner user-1, got %q", a.UserID)
		}
	}
}

func TestListAnswersScopedToOwner(t *testing.T) {
	db := setupTestDB(t)

	seedAnswer(t, db, "user-1", "q1")
	seedAnswer(t, db, "user-1", "q2")
	seedAnswer(t, db, "user-2", "q3")

	answers, err := services.ListAnswers(db, "user-1")
	if err != nil {
		t.Fatalf("ListAnswers failed: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("Expected 2 answers for user-1, got %d", len(answers))
	}
	for _, a := range answers {
		if a.UserID != "user-1" {
			t.Errorf("Foreign answer leaked into listing: %+v", a)
		}
	}
}

func TestBulkDeleteAnswersPartition(t *testing.T) {
	db := setupTestDB(t)

	a1 := seedAnswer(t, db, "user-1", "q1")
	a2 := seedAnswer(t, db, "user-1", "q2")
	a3 := seedAnswer(t, db, "user-2", "q3")
	missing := a3.ID + 100

	result, err := services.BulkDeleteAnswers(db, "user-1", []uint64{a1.ID, a2.ID, missing, a3.ID})
	if err != nil {
		t.Fatalf("BulkDeleteAnswers failed: %v", err)
	}

	if len(result.DeletedIDs) != 2 || result.DeletedIDs[0] != a1.ID || result.DeletedIDs[1] != a2.ID {
		t.Errorf("Expected deleted_ids [%d %d], got %v", a1.ID, a2.ID, result.DeletedIDs)
	}
	if len(result.NotFoundIDs) != 1 || result.NotFoundIDs[0] != missing {
		t.Errorf("Expected not_found_ids [%d], got %v", missing, result.NotFoundIDs)
	}
	if len(result.UnauthorizedIDs) != 1 || result.UnauthorizedIDs[0] != a3.ID {
		t.Errorf("Expected unauthorized_ids [%d], got %v", a3.ID, result.UnauthorizedIDs)
	}

	// Owned rows are gone, the foreign row survives
	var count int64
	db.Model(&models.Answer{}).Where("user_id = ?", "user-1").Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 remaining rows for user-1, got %d", count)
	}
	db.Model(&models.Answer{}).Where("id = ?", a3.ID).Count(&count)
	if count != 1 {
		t.Error("Foreign row was deleted")
	}
}

func TestBulkDeleteAnswersRepeatIsNotFound(t *testing.T) {
	db := setupTestDB(t)

	a := seedAnswer(t, db, "user-1", "q1")

	first, err := services.BulkDeleteAnswers(db, "user-1", []uint64{a.ID})
	if err != nil {
		t.Fatalf("First bulk delete failed: %v", err)
	}
	if len(first.DeletedIDs) != 1 {
		t.Fatalf("Expected one deleted id, got %v", first.DeletedIDs)
	}

	second, err := services.BulkDeleteAnswers(db, "user-1", []uint64{a.ID})
	if err != nil {
		t.Fatalf("Second bulk delete failed: %v", err)
	}
	if len(second.DeletedIDs) != 0 {
		t.Errorf("Expected no deletions on repeat, got %v", second.DeletedIDs)
	}
	if len(second.NotFoundIDs) != 1 || second.NotFoundIDs[0] != a.ID {
		t.Errorf("Expected repeat id in not_found_ids, got %v", second.NotFoundIDs)
	}
}

func TestBulkDeleteAnswersDeduplicates(t *testing.T) {
	db := setupTestDB(t)

	a := seedAnswer(t, db, "user-1", "q1")

	result, err := services.BulkDeleteAnswers(db, "user-1", []uint64{a.ID, a.ID, a.ID})
	if err != nil {
		t.Fatalf("BulkDeleteAnswers failed: %v", err)
	}
	if len(result.DeletedIDs) != 1 {
		t.Errorf("Expected duplicates collapsed to one deletion, got %v", result.DeletedIDs)
	}
}

func TestBulkDeleteAnswersEmptyListsAreNotNull(t *testing.T) {
	db := setupTestDB(t)

	a := seedAnswer(t, db, "user-1", "q1")

	result, err := services.BulkDeleteAnswers(db, "user-1", []uint64{a.ID})
	if err != nil {
		t.Fatalf("BulkDeleteAnswers failed: %v", err)
	}
	// Empty partitions must serialize as [] rather than null
	if result.NotFoundIDs == nil {
		t.Error("not_found_ids is nil")
	}
	if result.UnauthorizedIDs == nil {
		t.Error("unauthorized_ids is nil")
	}
}

func TestDeleteAnswerOwnership(t *testing.T) {
	db := setupTestDB(t)

	a := seedAnswer(t, db, "user-1", "q1")

	if err := services.DeleteAnswer(db, a.ID, "user-2"); err == nil {
		t.Fatal("Expected error deleting a foreign answer")
	}
	var count int64
	db.Model(&models.Answer{}).Where("id = ?", a.ID).Count(&count)
	if count != 1 {
		t.Fatal("Foreign delete removed the row")
	}

	if err := services.DeleteAnswer(db, a.ID, "user-1"); err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}
	db.Model(&models.Answer{}).Where("id = ?", a.ID).Count(&count)
	if count != 0 {
		t.Fatal("Owner delete left the row in place")
	}
}

func TestBulkDeleteAnswersRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)

	a1 := seedAnswer(t, db, "user-1", "q1")
	a2 := seedAnswer(t, db, "user-1", "q2")

	// Fail every delete statement so the surrounding transaction aborts.
	err := db.Callback().Delete().Before("gorm:delete").Register("test_fail_delete", func(tx *gorm.DB) {
		tx.AddError(errors.New("disk full"))
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}
	defer db.Callback().Delete().Remove("test_fail_delete")

	result, err := services.BulkDeleteAnswers(db, "user-1", []uint64{a1.ID, a2.ID})
	if err == nil {
		t.Fatal("Expected error from failed delete")
	}
	if !errors.Is(err, types.ErrStorage) {
		t.Fatalf("Expected storage error, got %v", err)
	}
	if result != nil {
		t.Fatalf("Expected nil result on failure, got %+v", result)
	}

	var count int64
	db.Model(&models.Answer{}).Where("user_id = ?", "user-1").Count(&count)
	if count != 2 {
		t.Fatalf("Expected both rows to survive the failed batch, got %d", count)
	}
}
