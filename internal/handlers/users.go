package handlers

import (
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/utils"
)

// UsersHandler handles user profile requests
type UsersHandler struct {
	DB *gorm.DB
}

// Sync handles POST /api/users/sync
// @Summary Upsert the caller's profile from the identity provider
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body services.UserInput true "Profile fields"
// @Success 200 {object} models.User
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /users/sync [post]
func (h *UsersHandler) Sync(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return err
	}

	user, err := services.SyncUser(h.DB, userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Me handles GET /api/users/me
// @Summary Get the caller's profile
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/me [get]
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	user, err := services.GetUser(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}
