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

package router

import (
	"github.com/fundflow/ff-api/handler"
	"github.com/fundflow/ff-api/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/lestrrat-go/jwx/jwk"
)

// SetupRoutes wires the api surface. Statement, chart, and quote reads
// are public; reports and alerts cost money or touch user rows and
// require authentication.
func SetupRoutes(app *fiber.App, jwksAutoRefresh *jwk.AutoRefresh, jwksURL string) {
	auth := middleware.FFAuth(jwksAutoRefresh, jwksURL)

	api := app.Group("/v1")
	api.Get("/ping", handler.Ping)
	api.Get("/tickers", handler.ListTickers)

	// Security
	security := api.Group("/security")
	security.Get("/:ticker/statement", handler.GetStatement)
	security.Get("/:ticker/profile", handler.GetProfile)
	security.Get("/:ticker/quote", handler.GetQuote)
	security.Get("/:ticker/news", handler.GetNews)
	security.Get("/:ticker/decompose", handler.GetDecomposition)
	security.Get("/:ticker/charts/sankey", handler.GetSankey)
	security.Get("/:ticker/charts/waterfall", handler.GetWaterfall)
	security.Get("/:ticker/charts/trend", handler.GetTrend)
	security.Get("/:ticker/yoy", handler.GetYoY)
	security.Get("/:ticker/signals", handler.GetSignals)
	security.Get("/:ticker/report", auth, handler.GetReport)
	security.Get("/:ticker/report/pdf", auth, handler.GetReportPDF)
	security.Get("/:ticker/report/xlsx", auth, handler.GetReportXLSX)

	// Alerts
	alerts := api.Group("/alerts", auth)
	alerts.Get("/", handler.ListAlerts)
	alerts.Post("/", handler.CreateAlert)
	alerts.Delete("/:id", handler.DeleteAlert)
}
