package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/edukita/studyhub/internal/logger"
	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/storage"
	"gorm.io/gorm"
)

func newFileService(db *gorm.DB) (*services.FileService, *storage.Memory) {
	store := storage.NewMemory()
	return &services.FileService{DB: db, Store: store, Log: logger.NewNop()}, store
}

func TestUploadBatchMixedOutcome(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newFileService(db)

	result, err := svc.Upload(context.Background(), "user-1", []services.FileUpload{
		{FileName: "notes.txt", ContentType: "text/plain", Size: 5, Reader: strings.NewReader("hello")},
		{FileName: "virus.exe", ContentType: "application/octet-stream", Size: 3, Reader: strings.NewReader("bad")},
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if len(result.SuccessFiles) != 1 || result.SuccessFiles[0] != "notes.txt" {
		t.Errorf("Expected notes.txt to succeed, got %v", result.SuccessFiles)
	}
	if len(result.FailedFiles) != 1 || result.FailedFiles[0] != "virus.exe" {
		t.Errorf("Expected virus.exe to fail, got %v", result.FailedFiles)
	}
	if result.Success {
		t.Error("Batch with a failed file should not report success")
	}

	var count int64
	db.Model(&models.File{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 file row, got %d", count)
	}
}

func TestFileReadContext(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newFileService(db)

	result, err := svc.Upload(context.Background(), "user-1", []services.FileUpload{
		{FileName: "a.txt", ContentType: "text/plain", Size: 7, Reader: strings.NewReader("alpha.")},
		{FileName: "b.md", ContentType: "text/markdown", Size: 6, Reader: strings.NewReader("beta.")},
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if len(result.Files) != 2 {
		t.Fatalf("Expected 2 stored files, got %d", len(result.Files))
	}

	ids := []uint64{result.Files[0].ID, result.Files[1].ID}
	docs, files, err := svc.ReadContext(context.Background(), "user-1", ids)
	if err != nil {
		t.Fatalf("ReadContext failed: %v", err)
	}
	if len(docs) != 2 || len(files) != 2 {
		t.Fatalf("Expected 2 documents, got %d docs %d files", len(docs), len(files))
	}
	if docs[0] != "alpha." || docs[1] != "beta." {
		t.Errorf("Unexpected document contents: %v", docs)
	}

	// A foreign caller cannot read the same files
	if _, _, err := svc.ReadContext(context.Background(), "user-2", ids); err == nil {
		t.Error("Expected error reading foreign files")
	}
}

func TestFileDeleteCleansAssociations(t *testing.T) {
	db := setupTestDB(t)
	svc, store := newFileService(db)

	result, err := svc.Upload(context.Background(), "user-1", []services.FileUpload{
		{FileName: "source.txt", ContentType: "text/plain", Size: 4, Reader: strings.NewReader("data")},
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	file := result.Files[0]

	exercise := models.Exercise{Title: "quiz", ExerciseType: models.ExerciseTypeMultipleChoice, UserID: "user-1"}
	if err := services.CreateExercise(db, &exercise, []models.File{file}); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	if err := svc.Delete(context.Background(), file.ID, "user-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var joinCount int64
	db.Table("exercise_file").Where("file_id = ?", file.ID).Count(&joinCount)
	if joinCount != 0 {
		t.Errorf("Expected join rows removed, got %d", joinCount)
	}

	exists, err := store.Exists(context.Background(), file.ObjectKey)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Expected stored object removed")
	}

	// Exercise itself survives the file deletion
	var exCount int64
	db.Model(&models.Exercise{}).Where("id = ?", exercise.ID).Count(&exCount)
	if exCount != 1 {
		t.Error("Exercise was removed by file deletion")
	}
}
