package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/edukita/studyhub/internal/types"
	"github.com/edukita/studyhub/internal/utils"
)

func TestErrorHandlerEnvelope(t *testing.T) {
	app := testApp("user-1")
	app.Get("/boom", func(c *fiber.Ctx) error {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "not yours",
			Type:    "resource.forbidden",
		}
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("Expected 403, got %d", resp.StatusCode)
	}

	var body utils.ErrorResponseStruct
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Status != fiber.StatusForbidden {
		t.Errorf("Expected status 403 in body, got %d", body.Status)
	}
	if body.Message != "not yours" {
		t.Errorf("Unexpected message: %q", body.Message)
	}
	if body.Ok {
		t.Error("Expected ok=false")
	}
	if body.URL != "/boom" {
		t.Errorf("Expected url /boom, got %q", body.URL)
	}
	if body.Type != "resource.forbidden" {
		t.Errorf("Unexpected type: %q", body.Type)
	}
	if body.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
}

func TestNotFoundResponseEnvelope(t *testing.T) {
	app := testApp("user-1")
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/nowhere", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("Expected 404, got %d", resp.StatusCode)
	}

	var body utils.ErrorResponseStruct
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Status != fiber.StatusNotFound || body.Ok {
		t.Errorf("Unexpected envelope: %+v", body)
	}
	if body.URL != "/nowhere" {
		t.Errorf("Expected url /nowhere, got %q", body.URL)
	}
}
