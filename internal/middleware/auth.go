// auth.go
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

package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/edukita/studyhub/internal/config"
	"github.com/edukita/studyhub/internal/types"
)

// UserIDKey is the Locals key under which the verified subject is stored.
const UserIDKey = "userID"

// AuthUser validates the bearer token and stores the subject uid in Locals.
func AuthUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization header not found",
				Type:    "auth.missing_token",
			}
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization header must be a bearer token",
				Type:    "auth.malformed_header",
			}
		}

		claims, err := parseToken(raw, cfg)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: fmt.Sprintf("Invalid token: %v", err),
				Type:    "auth.invalid_token",
			}
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Token has no subject",
				Type:    "auth.invalid_token",
			}
		}

		c.Locals(UserIDKey, sub)
		return c.Next()
	}
}

func parseToken(raw string, cfg *config.Config) (jwt.Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithIssuer(cfg.JWTIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return token.Claims, nil
}
