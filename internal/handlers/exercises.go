// exercises.go
//
// Learning-content backend for the studyhub application
// Copyright (c) 2026 Edukita <dev@edukita.io> (https://edukita.io)
//
// This file is part of studyhub.
// studyhub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// studyhub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with studyhub.
// If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"github.com/edukita/studyhub/internal/models"
	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/utils"
)

// ExercisesHandler handles exercise generation and retrieval requests
type ExercisesHandler struct {
	DB         *gorm.DB
	Gen        *services.GenerationService
	ChunkDelay time.Duration
}

type exerciseAnswerBody struct {
	Answer         models.JSON `json:"answer"`
	ScoringResults models.JSON `json:"scoring_results"`
}

// Generate handles POST /api/exercises/generate
// @Summary Generate an exercise
// @Description Generates questions from the topic and the caller's selected
// @Description files, then persists the result.
// @Tags Exercises
// @Accept json
// @Produce json
// @Param request body services.ExerciseGenInput true "Generation request"
// @Success 201 {object} models.Exercise
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /exercises/generate [post]
func (h *ExercisesHandler) Generate(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in services.ExerciseGenInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return err
	}

	exercise, err := h.Gen.GenerateExercise(c.Context(), userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, exercise, fiber.StatusCreated)
}

// GenerateStream handles POST /api/exercises/generate/stream
// @Summary Generate an exercise as a server-sent event stream
// @Description Streams generation fragments as SSE data events. The exercise
// @Description is persisted only when the stream completes; a terminal done
// @Description event carries the saved row.
// @Tags Exercises
// @Accept json
// @Produce text/event-stream
// @Param request body services.ExerciseGenInput true "Generation request"
// @Success 200 {string} string "SSE stream"
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /exercises/generate/stream [post]
func (h *ExercisesHandler) GenerateStream(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in services.ExerciseGenInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return err
	}

	return streamSSE(c, h.ChunkDelay, func(ctx context.Context, emit func(chunk string) error) (interface{}, error) {
		return h.Gen.GenerateExerciseStream(ctx, userID, in, emit)
	})
}

// List handles GET /api/exercises
// @Summary List the caller's exercises
// @Tags Exercises
// @Produce json
// @Success 200 {array} models.Exercise
// @Router /exercises [get]
func (h *ExercisesHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	exercises, err := services.ListExercises(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, exercises, fiber.StatusOK)
}

// Get handles GET /api/exercises/:id
// @Summary Get one exercise with its files
// @Tags Exercises
// @Produce json
// @Param id path int true "Exercise ID"
// @Success 200 {object} models.Exercise
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /exercises/{id} [get]
func (h *ExercisesHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	exercise, err := services.GetExercise(h.DB, id, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, exercise, fiber.StatusOK)
}

// Delete handles DELETE /api/exercises/:id
// @Summary Delete an exercise and its submissions
// @Tags Exercises
// @Produce json
// @Param id path int true "Exercise ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /exercises/{id} [delete]
func (h *ExercisesHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteExercise(h.DB, id, userID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, fiber.Map{"id": id})
}

// SaveAnswer handles POST /api/exercises/:id/answers
// @Summary Record a submission for an exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param id path int true "Exercise ID"
// @Success 201 {object} models.ExerciseUserAnswer
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /exercises/{id}/answers [post]
func (h *ExercisesHandler) SaveAnswer(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var body exerciseAnswerBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	row, err := services.SaveExerciseAnswer(h.DB, id, userID, body.Answer, body.ScoringResults)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, row, fiber.StatusCreated)
}

// ListAnswers handles GET /api/exercises/:id/answers
// @Summary List the caller's submissions for an exercise
// @Tags Exercises
// @Produce json
// @Param id path int true "Exercise ID"
// @Success 200 {array} models.ExerciseUserAnswer
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /exercises/{id}/answers [get]
func (h *ExercisesHandler) ListAnswers(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	rows, err := services.ListExerciseAnswers(h.DB, id, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}
