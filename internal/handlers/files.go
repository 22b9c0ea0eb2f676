// files.go
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
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/utils"
)

// FilesHandler handles file upload and retrieval requests
type FilesHandler struct {
	Files *services.FileService
}

// Upload handles POST /api/files
// @Summary Upload one or more files
// @Description Accepts a multipart form; each part under the "files" key is
// @Description stored. Rejected parts are reported, not fatal.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to upload"
// @Success 200 {object} services.UploadResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /files [post]
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected multipart form")
	}
	parts := form.File["files"]
	if len(parts) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files in request")
	}

	uploads := make([]services.FileUpload, 0, len(parts))
	opened := make([]multipart.File, 0, len(parts))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unreadable file part: "+part.Filename)
		}
		opened = append(opened, f)
		uploads = append(uploads, services.FileUpload{
			FileName:    part.Filename,
			ContentType: part.Header.Get(fiber.HeaderContentType),
			Size:        part.Size,
			Reader:      f,
		})
	}

	result, err := h.Files.Upload(c.Context(), userID, uploads)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// List handles GET /api/files
// @Summary List the caller's files
// @Tags Files
// @Produce json
// @Success 200 {array} models.File
// @Router /files [get]
func (h *FilesHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	files, err := h.Files.List(userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, files, fiber.StatusOK)
}

// Get handles GET /api/files/:id
// @Summary Get one file's metadata
// @Tags Files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} models.File
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /files/{id} [get]
func (h *FilesHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	file, err := h.Files.Get(id, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, file, fiber.StatusOK)
}

// SignedURL handles GET /api/files/:id/url
// @Summary Get a short-lived download URL for a file
// @Tags Files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /files/{id}/url [get]
func (h *FilesHandler) SignedURL(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	url, err := h.Files.SignedURL(c.Context(), id, userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.Map{"url": url}, fiber.StatusOK)
}

// Delete handles DELETE /api/files/:id
// @Summary Delete a file and its stored object
// @Tags Files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /files/{id} [delete]
func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Files.Delete(c.Context(), id, userID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, fiber.Map{"id": id})
}
