package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/edukita/studyhub/internal/handlers"
	"github.com/edukita/studyhub/internal/middleware"
	"github.com/edukita/studyhub/internal/models"
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

// testApp creates a Fiber app with the error handler installed and every
// request authenticated as the given user.
func testApp(userID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, userID)
		return c.Next()
	})
	return app
}

func seedAnswer(t *testing.T, db *gorm.DB, userID, question string) models.Answer {
	t.Helper()
	a := models.Answer{Question: question, UserID: userID}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("Failed to seed answer: %v", err)
	}
	return a
}

func TestBulkDeleteEmptyListRejected(t *testing.T) {
	db := setupTestDB(t)
	seedAnswer(t, db, "user-1", "q1")

	app := testApp("user-1")
	handler := &handlers.AnswersHandler{DB: db}
	app.Delete("/api/answers/bulk_delete", handler.BulkDelete)

	body := bytes.NewReader([]byte(`{"answer_ids": []}`))
	req := httptest.NewRequest("DELETE", "/api/answers/bulk_delete", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	// Nothing was deleted
	var count int64
	db.Model(&models.Answer{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected answer untouched, got %d rows", count)
	}
}

func TestBulkDeletePartitionOverHTTP(t *testing.T) {
	db := setupTestDB(t)
	mine := seedAnswer(t, db, "user-1", "q1")
	foreign := seedAnswer(t, db, "user-2", "q2")

	app := testApp("user-1")
	handler := &handlers.AnswersHandler{DB: db}
	app.Delete("/api/answers/bulk_delete", handler.BulkDelete)

	// ids arrive in mixed forms: number and numeric string
	payload := map[string]interface{}{
		"answer_ids": []interface{}{mine.ID, "99999", foreign.ID},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("DELETE", "/api/answers/bulk_delete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		DeletedIDs      []uint64 `json:"deleted_ids"`
		NotFoundIDs     []uint64 `json:"not_found_ids"`
		UnauthorizedIDs []uint64 `json:"unauthorized_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(result.DeletedIDs) != 1 || result.DeletedIDs[0] != mine.ID {
		t.Errorf("Expected deleted_ids [%d], got %v", mine.ID, result.DeletedIDs)
	}
	if len(result.NotFoundIDs) != 1 || result.NotFoundIDs[0] != 99999 {
		t.Errorf("Expected not_found_ids [99999], got %v", result.NotFoundIDs)
	}
	if len(result.UnauthorizedIDs) != 1 || result.UnauthorizedIDs[0] != foreign.ID {
		t.Errorf("Expected unauthorized_ids [%d], got %v", foreign.ID, result.UnauthorizedIDs)
	}
}

func TestBulkDeleteSingleBareID(t *testing.T) {
	db := setupTestDB(t)
	a := seedAnswer(t, db, "user-1", "q1")

	app := testApp("user-1")
	handler := &handlers.AnswersHandler{DB: db}
	app.Delete("/api/answers/bulk_delete", handler.BulkDelete)

	// A bare id instead of a list is accepted
	payload := map[string]interface{}{"answer_ids": a.ID}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("DELETE", "/api/answers/bulk_delete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Answer{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected answer deleted, got %d rows", count)
	}
}

func TestDeleteAnswerStatusCodes(t *testing.T) {
	db := setupTestDB(t)
	foreign := seedAnswer(t, db, "user-2", "q1")

	app := testApp("user-1")
	handler := &handlers.AnswersHandler{DB: db}
	app.Delete("/api/answers/delete/:id", handler.Delete)

	// Foreign answer: 403, and the row survives
	req := httptest.NewRequest("DELETE", "/api/answers/delete/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("Expected status 403 for foreign answer, got %d", resp.StatusCode)
	}
	var count int64
	db.Model(&models.Answer{}).Where("id = ?", foreign.ID).Count(&count)
	if count != 1 {
		t.Error("Foreign answer was deleted")
	}

	// Missing answer: 404
	req = httptest.NewRequest("DELETE", "/api/answers/delete/424242", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected status 404 for missing answer, got %d", resp.StatusCode)
	}

	// Non-numeric id: 400
	req = httptest.NewRequest("DELETE", "/api/answers/delete/abc", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400 for bad id, got %d", resp.StatusCode)
	}
}

func TestSaveAnswersValidation(t *testing.T) {
	db := setupTestDB(t)

	app := testApp("user-1")
	handler := &handlers.AnswersHandler{DB: db}
	app.Post("/api/answers/save_answers", handler.Save)

	// Missing required question field
	body := bytes.NewReader([]byte(`{"answers": [{"title": "no question"}]}`))
	req := httptest.NewRequest("POST", "/api/answers/save_answers", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Answer{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no rows after validation failure, got %d", count)
	}
}
