package services_test

import (
	"errors"
	"testing"

	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/types"
)

func TestSyncUserUpserts(t *testing.T) {
	db := setupTestDB(t)

	first, err := services.SyncUser(db, "uid-1", services.UserInput{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}
	if first.UID != "uid-1" {
		t.Errorf("Expected uid-1, got %q", first.UID)
	}

	// Second sync with changed fields updates in place
	_, err = services.SyncUser(db, "uid-1", services.UserInput{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Second SyncUser failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("Expected single user row, got %d", count)
	}

	got, err := services.GetUser(db, "uid-1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Name != "Ada Lovelace" {
		t.Errorf("Expected updated name, got %q", got.Name)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.GetUser(db, "nobody")
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
