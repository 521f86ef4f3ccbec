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
	"time"

	"github.com/fundflow/ff-api/alerts"
	"github.com/fundflow/ff-api/common"
	"github.com/fundflow/ff-api/database"
	"github.com/fundflow/ff-api/reports"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	if err := viper.BindEnv("reports.ttl", "REPORT_TTL"); err != nil {
		log.Panic().Err(err).Msg("could not bind reports.ttl")
	}
	purgeCmd.Flags().Duration("report-ttl", 0, "Maximum report age before it is considered stale")
	if err := viper.BindPFlag("reports.ttl", purgeCmd.Flags().Lookup("report-ttl")); err != nil {
		log.Panic().Err(err).Msg("could not bind reports.ttl")
	}

	purgeCmd.Flags().Duration("alert-age", 30*24*time.Hour, "Delete triggered alerts older than this age")
	if err := viper.BindPFlag("alerts.max_triggered_age", purgeCmd.Flags().Lookup("alert-age")); err != nil {
		log.Panic().Err(err).Msg("could not bind alerts.max_triggered_age")
	}

	rootCmd.AddCommand(purgeCmd)
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete stale cached reports and old triggered alerts",
	Run: func(_ *cobra.Command, _ []string) {
		common.SetupLogging()

		cnt := reports.PurgeCache()
		log.Info().Int("NumPurged", cnt).Msg("purged stale reports")

		if err := database.Connect(); err != nil {
			log.Fatal().Err(err).Msg("could not connect to database")
		}
		removed, err := alerts.PurgeTriggered(context.Background(), viper.GetDuration("alerts.max_triggered_age"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not purge triggered alerts")
		}
		log.Info().Int64("NumPurged", removed).Msg("purged triggered alerts")
	},
}
