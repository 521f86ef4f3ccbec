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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"runtime/trace"
	"time"

	"github.com/fundflow/ff-api/alerts"
	"github.com/fundflow/ff-api/common"
	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/database"
	"github.com/fundflow/ff-api/jwks"
	"github.com/fundflow/ff-api/marketcal"
	"github.com/fundflow/ff-api/middleware"
	"github.com/fundflow/ff-api/observability/opentelemetry"
	"github.com/fundflow/ff-api/reports"
	"github.com/fundflow/ff-api/router"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	if err := viper.BindEnv("server.port", "PORT"); err != nil {
		log.Panic().Err(err).Msg("could not bind server.port")
	}
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	if err := viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port")); err != nil {
		log.Panic().Err(err).Msg("could not bind port flag")
	}

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ff-api server",
	Long:  `Run HTTP server that implements the FundFlow API`,
	Run: func(cmd *cobra.Command, args []string) {
		if Profile {
			f, err := os.Create("profile.out")
			if err != nil {
				log.Fatal().Err(err).Msg("could not create profile output file")
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				log.Fatal().Err(err).Msg("could not start CPU profile")
			}
			defer pprof.StopCPUProfile()
		}

		if Trace {
			f, err := os.Create("trace.out")
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create trace output file")
			}
			defer func() {
				if err := f.Close(); err != nil {
					log.Fatal().Err(err).Msg("failed to close trace file")
				}
			}()

			if err := trace.Start(f); err != nil {
				log.Fatal().Err(err).Msg("failed to start trace")
			}
			defer trace.Stop()
		}

		common.SetupLogging()
		common.SetupCache()
		log.Info().Msg("initialized logging")

		if viper.GetString("otlp.endpoint") != "" {
			shutdownTracer, err := opentelemetry.Setup()
			if err != nil {
				log.Fatal().Err(err).Msg("could not initialize tracing")
			}
			defer func() {
				if err := shutdownTracer(context.Background()); err != nil {
					log.Error().Err(err).Msg("tracer shutdown failed")
				}
			}()
		}

		// setup database
		if err := database.Connect(); err != nil {
			log.Fatal().Err(err).Msg("could not connect to database")
		}

		// initialize the data manager singleton
		data.GetManagerInstance()
		log.Info().Msg("initialized data manager")

		app := fiber.New()

		// shutdown cleanly on interrupt
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			sig := <-c // block until signal is read
			fmt.Printf("Received signal: '%s'; shutting down...\n", sig.String())
			if err := app.Shutdown(); err != nil {
				log.Fatal().Err(err).Msg("shutdown failed")
			}
		}()

		// Configure CORS
		corsConfig := cors.Config{
			AllowOrigins: "http://localhost:8080, https://app.fundflow.dev",
			AllowHeaders: "*",
			AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		}
		app.Use(cors.New(corsConfig))

		// Setup logging middleware
		app.Use(middleware.NewLogger())

		// Configure authentication
		jwksAutoRefresh, jwksURL := jwks.SetupJWKS()

		// Setup routes
		router.SetupRoutes(app, jwksAutoRefresh, jwksURL)

		// Background jobs: alert sweeps during market hours, plus daily
		// ticker-universe and report-cache maintenance.
		tz, _ := time.LoadLocation("America/New_York") // New York is the reference time
		scheduler := gocron.NewScheduler(tz)
		if _, err := scheduler.Every(15).Minutes().Do(func() {
			if !marketcal.IsMarketOpen(time.Now()) {
				return
			}
			alerts.Evaluate(context.Background(), data.GetManagerInstance())
		}); err != nil {
			log.Error().Err(err).Msg("could not schedule alert evaluation")
		}
		if _, err := scheduler.Every(1).Day().At("06:00").Do(func() {
			data.RefreshListings(context.Background())
		}); err != nil {
			log.Error().Err(err).Msg("could not schedule ticker universe refresh")
		}
		if _, err := scheduler.Every(1).Day().At("03:00").Do(func() {
			reports.PurgeCache()
		}); err != nil {
			log.Error().Err(err).Msg("could not schedule report cache purge")
		}
		scheduler.StartAsync()

		if err := app.Listen(":" + viper.GetString("server.port")); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	},
}
