// common.go
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
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/edukita/studyhub/internal/middleware"
	"github.com/edukita/studyhub/internal/types"
	"github.com/edukita/studyhub/internal/utils"
)

var validate = validator.New()

// getUserID extracts the verified user id placed in Locals by the auth
// middleware.
func getUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "user not found in context",
			Type:    "auth.missing_identity",
		}
	}
	return userID, nil
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "invalid " + name + " parameter: " + raw,
			Type:    "request.invalid_param",
		}
	}
	return id, nil
}

// ErrorHandler translates service and validation errors into the response
// envelope. It is installed as the fiber app's ErrorHandler so handlers can
// return errors unwrapped.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &validationErrs):
		code = fiber.StatusUnprocessableEntity
		errorType = "request.validation"
	case errors.Is(err, types.ErrForbidden):
		code = fiber.StatusForbidden
		errorType = "resource.forbidden"
	case errors.Is(err, types.ErrNotFound):
		code = fiber.StatusNotFound
		errorType = "resource.not_found"
	case errors.Is(err, types.ErrUpstream):
		code = fiber.StatusBadGateway
		errorType = "upstream"
	case errors.Is(err, types.ErrStorage):
		code = fiber.StatusInternalServerError
		errorType = "storage"
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return utils.ErrorResponse(c, message, code, errorType)
}
