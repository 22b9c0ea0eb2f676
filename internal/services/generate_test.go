package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/edukita/studyhub/internal/generation"
	"github.com/edukita/studyhub/internal/logger"
	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/storage"
	"gorm.io/gorm"
)

// fakeGenerator emits a fixed chunk sequence, optionally failing after a
// number of chunks.
type fakeGenerator struct {
	chunks    []string
	failAfter int // -1 means never fail
}

func (f *fakeGenerator) Generate(_ context.Context, _ generation.Request) (string, error) {
	if f.failAfter == 0 {
		return "", errors.New("model unavailable")
	}
	var out string
	for _, c := range f.chunks {
		out += c
	}
	return out, nil
}

func (f *fakeGenerator) GenerateStream(_ context.Context, _ generation.Request, emit func(chunk string) error) error {
	for i, c := range f.chunks {
		if f.failAfter >= 0 && i == f.failAfter {
			return errors.New("stream broken")
		}
		if err := emit(c); err != nil {
			return err
		}
	}
	return nil
}

func newGenService(db *gorm.DB, gen generation.Generator) *services.GenerationService {
	log := logger.NewNop()
	files := &services.FileService{DB: db, Store: storage.NewMemory(), Log: log}
	return &services.GenerationService{DB: db, Gen: gen, Files: files, Log: log}
}

func TestGenerateExercisePersists(t *testing.T) {
	db := setupTestDB(t)
	svc := newGenService(db, &fakeGenerator{chunks: []string{`{"questions":[]}`}, failAfter: -1})

	exercise, err := svc.GenerateExercise(context.Background(), "user-1", services.ExerciseGenInput{
		Title:        "algebra quiz",
		Topic:        "linear equations",
		ExerciseType: models.ExerciseTypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("GenerateExercise failed: %v", err)
	}
	if exercise.ID == 0 {
		t.Fatal("Expected persisted exercise")
	}
	if exercise.ExerciseType != models.ExerciseTypeMultipleChoice {
		t.Errorf("Expected multiple_choice type, got %q", exercise.ExerciseType)
	}

	var count int64
	db.Model(&models.Exercise{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 exercise row, got %d", count)
	}
}

func TestGenerateExerciseStreamPersistsOnCompletion(t *testing.T) {
	db := setupTestDB(t)
	svc := newGenService(db, &fakeGenerator{chunks: []string{"part one ", "part two"}, failAfter: -1})

	var received []string
	exercise, err := svc.GenerateExerciseStream(context.Background(), "user-1", services.ExerciseGenInput{
		Title:        "streamed quiz",
		Topic:        "thermodynamics",
		ExerciseType: models.ExerciseTypeMultipleChoice,
	}, func(chunk string) error {
		received = append(received, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("GenerateExerciseStream failed: %v", err)
	}

	if len(received) != 2 {
		t.Errorf("Expected 2 forwarded chunks, got %d", len(received))
	}
	if exercise.ExerciseType != models.ExerciseTypeStream {
		t.Errorf("Expected stream type, got %q", exercise.ExerciseType)
	}
	if string(exercise.Response.JSON) != "part one part two" {
		t.Errorf("Persisted response does not match accumulated chunks: %q", string(exercise.Response.JSON))
	}
}

func TestGenerateExerciseStreamDiscardsPartialOnFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := newGenService(db, &fakeGenerator{chunks: []string{"part one ", "part two"}, failAfter: 1})

	var received []string
	_, err := svc.GenerateExerciseStream(context.Background(), "user-1", services.ExerciseGenInput{
		Title:        "doomed quiz",
		Topic:        "entropy",
		ExerciseType: models.ExerciseTypeMultipleChoice,
	}, func(chunk string) error {
		received = append(received, chunk)
		return nil
	})
	if err == nil {
		t.Fatal("Expected error from broken stream")
	}
	if len(received) != 1 {
		t.Errorf("Expected 1 chunk forwarded before the break, got %d", len(received))
	}

	// Nothing persisted after a broken stream
	var count int64
	db.Model(&models.Exercise{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no exercise rows after failure, got %d", count)
	}
}

func TestGenerateOutputStreamPersistsOnCompletion(t *testing.T) {
	db := setupTestDB(t)
	svc := newGenService(db, &fakeGenerator{chunks: []string{"summary ", "text"}, failAfter: -1})

	output, err := svc.GenerateOutputStream(context.Background(), "user-1", services.OutputGenInput{
		Title: "chapter summary",
		Topic: "photosynthesis",
		Style: "bullet_points",
	}, func(string) error { return nil })
	if err != nil {
		t.Fatalf("GenerateOutputStream failed: %v", err)
	}
	if output.Output != "summary text" {
		t.Errorf("Expected accumulated output, got %q", output.Output)
	}

	var count int64
	db.Model(&models.Output{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 output row, got %d", count)
	}
}
