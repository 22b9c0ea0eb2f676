package handlers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/utils"
)

// OutputsHandler handles summary generation and retrieval requests
type OutputsHandler struct {
	DB         *gorm.DB
	Gen        *services.GenerationService
	ChunkDelay time.Duration
}

// Generate handles POST /api/outputs/generate
// @Summary Generate a summary output
// @Tags Outputs
// @Accept json
// @Produce json
// @Param request body services.OutputGenInput true "Generation request"
// @Success 201 {object} models.Output
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /outputs/generate [post]
func (h *OutputsHandler) Generate(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in services.OutputGenInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return err
	}

	output, err := h.Gen.GenerateOutput(c.Context(), userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, output, fiber.StatusCreated)
}

// GenerateStream handles POST /api/outputs/generate/stream
// @Summary Generate a summary as a server-sent event stream
// @Tags Outputs
// @Accept json
// @Produce text/event-stream
// @Param request body services.OutputGenInput true "Generation request"
// @Success 200 {string} string "SSE stream"
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /outputs/generate/stream [post]
func (h *OutputsHandler) GenerateStream(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in services.OutputGenInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return err
	}

	return streamSSE(c, h.ChunkDelay, func(ctx context.Context, emit func(chunk string) error) (interface{}, error) {
		return h.Gen.GenerateOutputStream(ctx, userID, in, emit)
	})
}

// List handles GET /api/outputs
// @Summary List the caller's outputs
// @Tags Outputs
// @Produce json
// @Success 200 {array} models.Output
// @Router /outputs [get]
func (h *OutputsHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	outputs, err := services.ListOutputs(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, outputs, fiber.StatusOK)
}

// Get handles GET /api/outputs/:id
// @Summary Get one output with its files
// @Tags Outputs
// @Produce json
// @Param id path int true "Output ID"
// @Success 200 {object} models.Output
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /outputs/{id} [get]
func (h *OutputsHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	output, err := services.GetOutput(h.DB, id, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, output, fiber.StatusOK)
}

// Delete handles DELETE /api/outputs/:id
// @Summary Delete an output
// @Tags Outputs
// @Produce json
// @Param id path int true "Output ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /outputs/{id} [delete]
func (h *OutputsHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteOutput(h.DB, id, userID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, fiber.Map{"id": id})
}
