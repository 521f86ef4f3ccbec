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
	"fmt"
	"os"

	"github.com/fundflow/ff-api/common"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Profile bool
var Trace bool

func bindEnv(key string, env string) {
	if err := viper.BindEnv(key, env); err != nil {
		log.Panic().Err(err).Str("Key", key).Msg("could not bind environment variable")
	}
}

func bindFlag(key string, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		log.Panic().Err(err).Str("Key", key).Msg("could not bind flag")
	}
}

func init() {
	// FF secret key
	bindEnv("secret_key", "FF_SECRET")
	rootCmd.PersistentFlags().String("secret-key", "", "Secret encryption key")
	bindFlag("secret_key", "secret-key")

	// AUTH0
	bindEnv("auth0.domain", "AUTH0_DOMAIN")
	rootCmd.PersistentFlags().String("auth0-domain", "", "Auth0 domain")
	bindFlag("auth0.domain", "auth0-domain")

	// Database
	bindEnv("database.url", "DATABASE_URL")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string")
	bindFlag("database.url", "database-url")

	// Data providers
	bindEnv("quickfs.token", "QUICKFS_TOKEN")
	rootCmd.PersistentFlags().String("quickfs-token", "", "QuickFS API token")
	bindFlag("quickfs.token", "quickfs-token")

	bindEnv("gemini.token", "GEMINI_API_KEY")
	rootCmd.PersistentFlags().String("gemini-token", "", "Gemini API key for report generation")
	bindFlag("gemini.token", "gemini-token")

	rootCmd.PersistentFlags().String("gemini-model", "", "Gemini model used for report generation")
	bindFlag("gemini.model", "gemini-model")

	// Logging configuration
	bindEnv("log.level", "FF_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	bindFlag("log.level", "log-level")

	bindEnv("log.report_caller", "FF_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	bindFlag("log.report_caller", "log-report-caller")

	bindEnv("log.output", "FF_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stdout", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	bindFlag("log.output", "log-output")

	// Tracing
	bindEnv("otlp.endpoint", "OTLP_ENDPOINT")
	rootCmd.PersistentFlags().String("otlp-endpoint", "", "OTLP trace collector endpoint")
	bindFlag("otlp.endpoint", "otlp-endpoint")

	rootCmd.PersistentFlags().BoolVar(&Profile, "cpu-profile", false, "Run pprof and save in profile.out")
	rootCmd.PersistentFlags().BoolVar(&Trace, "trace", false, "Trace program execution and save in trace.out")
}

var rootCmd = &cobra.Command{
	Use:     "ffapi",
	Version: common.CurrentVersion.String(),
	Short:   "FundFlow serves income-statement decompositions and charts",
	Long:    `FundFlow pulls company fundamentals, decomposes income statements into flow and bridge charts, and drafts research notes.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
