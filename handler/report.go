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
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/decompose"
	"github.com/fundflow/ff-api/reports"
)

var reportGenerator = reports.NewGemini()

func reportFor(c *fiber.Ctx) (*reports.Report, error) {
	ticker := tickerParam(c)
	force := c.QueryBool("force", false)

	report, err := reports.Get(context.Background(), data.GetManagerInstance(), reportGenerator, ticker, force)
	if err != nil {
		log.Warn().Err(err).Str("Ticker", ticker).Msg("could not produce report")
		if errors.Is(err, reports.ErrNoAPIKey) {
			return nil, fiber.ErrNotImplemented
		}
		return nil, fiber.ErrServiceUnavailable
	}
	return report, nil
}

// GetReport returns the research note, generating it on a cache miss.
func GetReport(c *fiber.Ctx) error {
	report, err := reportFor(c)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// GetReportPDF exports the research note as a PDF document.
func GetReportPDF(c *fiber.Ctx) error {
	report, err := reportFor(c)
	if err != nil {
		return err
	}

	stmt, err := statementFor(c, tickerParam(c))
	if err != nil {
		return err
	}
	d := decompose.Decompose(stmt, 0, decompose.NewScenario())

	raw, err := reports.RenderPDF(report, d)
	if err != nil {
		log.Error().Err(err).Str("Ticker", report.Ticker).Msg("could not render pdf")
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-report.pdf"`, report.Ticker))
	return c.Send(raw)
}

// GetReportXLSX exports the statement and breakdown as a workbook.
func GetReportXLSX(c *fiber.Ctx) error {
	stmt, err := statementFor(c, tickerParam(c))
	if err != nil {
		return err
	}
	d := decompose.Decompose(stmt, 0, decompose.NewScenario())

	raw, err := reports.RenderXLSX(stmt, d)
	if err != nil {
		log.Error().Err(err).Str("Ticker", tickerParam(c)).Msg("could not render workbook")
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-statement.xlsx"`, tickerParam(c)))
	return c.Send(raw)
}
