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
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fundflow/ff-api/charts"
	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/decompose"
	"github.com/fundflow/ff-api/indicators"
)

// multiplierBounds is the what-if slider range exposed to callers.
const (
	minMultiplier = 0.7
	maxMultiplier = 1.3
)

func tickerParam(c *fiber.Ctx) string {
	return strings.ToUpper(strings.TrimSpace(c.Params("ticker")))
}

func periodQuery(c *fiber.Ctx) int {
	period, err := strconv.Atoi(c.Query("period", "0"))
	if err != nil || period < 0 {
		return 0
	}
	return period
}

func scenarioQuery(c *fiber.Ctx) decompose.Scenario {
	parse := func(name string) float64 {
		v, err := strconv.ParseFloat(c.Query(name, "1.0"), 64)
		if err != nil {
			return 1.0
		}
		if v < minMultiplier {
			return minMultiplier
		}
		if v > maxMultiplier {
			return maxMultiplier
		}
		return v
	}
	return decompose.Scenario{
		RevenueMultiplier: parse("revenueMultiplier"),
		CostMultiplier:    parse("costMultiplier"),
	}
}

func statementFor(c *fiber.Ctx, ticker string) (*data.Statement, error) {
	stmt, err := data.GetManagerInstance().GetIncomeStatement(context.Background(), ticker)
	if err != nil {
		log.Warn().Err(err).Str("Ticker", ticker).Msg("could not fetch income statement")
		if errors.Is(err, data.ErrMalformedStatement) {
			return nil, fiber.ErrBadGateway
		}
		return nil, fiber.ErrServiceUnavailable
	}
	return stmt, nil
}

// GetStatement returns the raw statement table.
func GetStatement(c *fiber.Ctx) error {
	stmt, err := statementFor(c, tickerParam(c))
	if err != nil {
		return err
	}
	return c.JSON(stmt)
}

// GetDecomposition returns the derived breakdown for one period, with
// optional what-if multipliers.
func GetDecomposition(c *fiber.Ctx) error {
	stmt, err := statementFor(c, tickerParam(c))
	if err != nil {
		return err
	}

	d := decompose.Decompose(stmt, periodQuery(c), scenarioQuery(c))
	if d == nil {
		// no data is a valid, displayable state
		return c.JSON(fiber.Map{})
	}
	return c.JSON(d)
}

// GetSankey returns the flow graph projection.
func GetSankey(c *fiber.Ctx) error {
	stmt, err := statementFor(c, tickerParam(c))
	if err != nil {
		return err
	}
	d := decompose.Decompose(stmt, periodQuery(c), scenarioQuery(c))
	return c.JSON(charts.ToFlowGraph(d))
}

// GetWaterfall returns the bridge projection.
func GetWaterfall(c *fiber.Ctx) error {
	stmt, err := statementFor(c, tickerParam(c))
	if err != nil {
		return err
	}
	d := decompose.Decompose(stmt, periodQuery(c), scenarioQuery(c))
	return c.JSON(charts.ToBridge(d))
}

// GetTrend returns the multi-period trend chart.
func GetTrend(c *fiber.Ctx) error {
	stmt, err := statementFor(c, tickerParam(c))
	if err != nil {
		return err
	}
	return c.JSON(charts.ToTrendChart(indicators.Trend(stmt, nil)))
}

// GetYoY returns the year-over-year deltas.
func GetYoY(c *fiber.Ctx) error {
	stmt, err := statementFor(c, tickerParam(c))
	if err != nil {
		return err
	}
	deltas := indicators.YoY(stmt, nil)
	if deltas == nil {
		deltas = []indicators.YoYDelta{}
	}
	return c.JSON(deltas)
}

// GetProfile returns scalar company attributes.
func GetProfile(c *fiber.Ctx) error {
	ticker := tickerParam(c)
	info, err := data.GetManagerInstance().GetCompanyProfile(context.Background(), ticker)
	if err != nil {
		log.Warn().Err(err).Str("Ticker", ticker).Msg("could not fetch company profile")
		return fiber.ErrServiceUnavailable
	}
	return c.JSON(info)
}

// GetQuote returns the latest price observation.
func GetQuote(c *fiber.Ctx) error {
	ticker := tickerParam(c)
	quote, err := data.GetManagerInstance().GetQuote(context.Background(), ticker)
	if err != nil {
		log.Warn().Err(err).Str("Ticker", ticker).Msg("could not fetch quote")
		if errors.Is(err, data.ErrNoQuote) {
			return fiber.ErrNotFound
		}
		return fiber.ErrServiceUnavailable
	}
	return c.JSON(quote)
}

// GetNews returns recent headlines.
func GetNews(c *fiber.Ctx) error {
	ticker := tickerParam(c)
	maxItems, err := strconv.Atoi(c.Query("count", "10"))
	if err != nil || maxItems <= 0 {
		maxItems = 10
	}

	items, err := data.GetManagerInstance().GetNews(context.Background(), ticker, maxItems)
	if err != nil {
		log.Warn().Err(err).Str("Ticker", ticker).Msg("could not fetch news")
		return fiber.ErrServiceUnavailable
	}
	if items == nil {
		items = []data.NewsItem{}
	}
	return c.JSON(items)
}

// GetSignals returns the technical indicator snapshot.
func GetSignals(c *fiber.Ctx) error {
	ticker := tickerParam(c)
	days, err := strconv.Atoi(c.Query("days", "180"))
	if err != nil || days <= 0 {
		days = 180
	}

	closes, err := data.GetManagerInstance().GetHistory(context.Background(), ticker, days)
	if err != nil {
		log.Warn().Err(err).Str("Ticker", ticker).Msg("could not fetch price history")
		return fiber.ErrServiceUnavailable
	}

	signals, err := indicators.ComputeSignals(closes)
	if err != nil {
		if errors.Is(err, indicators.ErrInsufficientHistory) {
			return fiber.ErrUnprocessableEntity
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(signals)
}

// ListTickers returns the filtered NASDAQ symbol directory.
func ListTickers(c *fiber.Ctx) error {
	return c.JSON(data.Listings(context.Background()))
}
