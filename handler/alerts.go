// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package handler

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fundflow/ff-api/alerts"
)

func userID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals("userID").(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}

// ListAlerts returns the requesting user's alerts.
func ListAlerts(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	result, err := alerts.ForUser(context.Background(), uid)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(result)
}

// CreateAlert stores a new alert for the requesting user.
func CreateAlert(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var alert alerts.Alert
	if err := json.Unmarshal(c.Body(), &alert); err != nil {
		log.Warn().Err(err).Msg("could not parse alert body")
		return fiber.ErrBadRequest
	}

	alert.Ticker = strings.ToUpper(strings.TrimSpace(alert.Ticker))
	if !alert.Valid() {
		return fiber.ErrUnprocessableEntity
	}

	if err := alerts.Save(context.Background(), uid, &alert); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(alert)
}

// DeleteAlert removes one of the requesting user's alerts.
func DeleteAlert(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	if err := alerts.Delete(context.Background(), uid, id); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}
