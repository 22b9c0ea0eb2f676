package handlers

import (
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/utils"
)

// NotesHandler handles note CRUD requests
type NotesHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/notes
// @Summary Create a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param note body services.NoteInput true "Note content"
// @Success 201 {object} models.Note
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /notes [post]
func (h *NotesHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in services.NoteInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return err
	}

	note, err := services.CreateNote(h.DB, userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, note, fiber.StatusCreated)
}

// List handles GET /api/notes
// @Summary List the caller's notes
// @Tags Notes
// @Produce json
// @Success 200 {array} models.Note
// @Router /notes [get]
func (h *NotesHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	notes, err := services.ListNotes(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, notes, fiber.StatusOK)
}

// Get handles GET /api/notes/:id
// @Summary Get one note
// @Tags Notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} models.Note
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notes/{id} [get]
func (h *NotesHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	note, err := services.GetNote(h.DB, id, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, note, fiber.StatusOK)
}

// Update handles PUT /api/notes/:id
// @Summary Update a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param note body services.NoteInput true "New note content"
// @Success 200 {object} models.Note
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notes/{id} [put]
func (h *NotesHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var in services.NoteInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return err
	}

	note, err := services.UpdateNote(h.DB, id, userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, note, fiber.StatusOK)
}

// Delete handles DELETE /api/notes/:id
// @Summary Delete a note
// @Tags Notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notes/{id} [delete]
func (h *NotesHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteNote(h.DB, id, userID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, fiber.Map{"id": id})
}
