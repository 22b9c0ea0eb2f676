// answers.go
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
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/types"
	"github.com/edukita/studyhub/internal/utils"
)

// AnswersHandler handles saved-answer requests
type AnswersHandler struct {
	DB *gorm.DB
}

// saveAnswersBody accepts a single answer object or a list of them.
type saveAnswersBody struct {
	Answers types.FlexList[services.AnswerInput] `json:"answers"`
}

// bulkDeleteBody accepts a single id or a list; ids may arrive as JSON
// numbers or numeric strings.
type bulkDeleteBody struct {
	AnswerIDs types.FlexList[types.FlexID] `json:"answer_ids"`
}

// Save handles POST /api/answers/save_answers
// @Summary Save a batch of answers
// @Tags Answers
// @Accept json
// @Produce json
// @Success 201 {array} models.Answer
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /answers/save_answers [post]
func (h *AnswersHandler) Save(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var body saveAnswersBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.Answers) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no answers provided")
	}
	for _, in := range body.Answers {
		if err := validate.Struct(in); err != nil {
			return err
		}
	}

	answers, err := services.SaveAnswers(h.DB, userID, body.Answers.Slice())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, answers, fiber.StatusCreated)
}

// List handles GET /api/answers/list
// @Summary List the caller's saved answers
// @Tags Answers
// @Produce json
// @Success 200 {array} models.Answer
// @Router /answers/list [get]
func (h *AnswersHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	answers, err := services.ListAnswers(h.DB, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, answers, fiber.StatusOK)
}

// Delete handles DELETE /api/answers/delete/:id
// @Summary Delete one saved answer
// @Tags Answers
// @Produce json
// @Param id path int true "Answer ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /answers/delete/{id} [delete]
func (h *AnswersHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteAnswer(h.DB, id, userID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, fiber.Map{"id": id})
}

// BulkDelete handles DELETE /api/answers/bulk_delete
// @Summary Delete a batch of saved answers
// @Description Partitions the requested ids into deleted, not found and
// @Description unauthorized. An empty id list is rejected before any
// @Description database work.
// @Tags Answers
// @Accept json
// @Produce json
// @Success 200 {object} services.BulkDeleteResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /answers/bulk_delete [delete]
func (h *AnswersHandler) BulkDelete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var body bulkDeleteBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.AnswerIDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no answer ids provided")
	}

	ids := make([]uint64, len(body.AnswerIDs))
	for i, id := range body.AnswerIDs.Slice() {
		ids[i] = id.Uint64()
	}

	result, err := services.BulkDeleteAnswers(h.DB, userID, ids)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}
