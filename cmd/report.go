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
	"strings"

	"github.com/fundflow/ff-api/common"
	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/decompose"
	"github.com/fundflow/ff-api/reports"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var reportForce bool
var reportPDF string
var reportXLSX string

func init() {
	reportCmd.Flags().BoolVar(&reportForce, "force", false, "Regenerate the report even when a fresh cached copy exists")
	reportCmd.Flags().StringVar(&reportPDF, "pdf", "", "Write the report as a PDF to the given path")
	reportCmd.Flags().StringVar(&reportXLSX, "xlsx", "", "Write the underlying statement as an Excel workbook to the given path")

	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <ticker>",
	Short: "Generate a research note for a ticker",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()

		ctx := context.Background()
		ticker := strings.ToUpper(args[0])

		manager := data.GetManagerInstance()
		report, err := reports.Get(ctx, manager, reports.NewGemini(), ticker, reportForce)
		if err != nil {
			log.Fatal().Err(err).Str("Ticker", ticker).Msg("could not generate report")
		}

		if reportPDF == "" && reportXLSX == "" {
			fmt.Printf("%s (%s, generated %s)\n\n", report.Ticker, report.Model,
				report.GeneratedAt.Format("2006-01-02 15:04"))
			fmt.Println(report.Text)
			return
		}

		stmt, err := manager.GetIncomeStatement(ctx, ticker)
		if err != nil {
			log.Fatal().Err(err).Str("Ticker", ticker).Msg("could not fetch income statement")
		}
		d := decompose.Decompose(stmt, 0, decompose.NewScenario())

		if reportPDF != "" {
			raw, err := reports.RenderPDF(report, d)
			if err != nil {
				log.Fatal().Err(err).Msg("could not render PDF")
			}
			if err := os.WriteFile(reportPDF, raw, 0644); err != nil {
				log.Fatal().Err(err).Str("Path", reportPDF).Msg("could not write PDF")
			}
			log.Info().Str("Path", reportPDF).Msg("wrote PDF report")
		}

		if reportXLSX != "" {
			raw, err := reports.RenderXLSX(stmt, d)
			if err != nil {
				log.Fatal().Err(err).Msg("could not render workbook")
			}
			if err := os.WriteFile(reportXLSX, raw, 0644); err != nil {
				log.Fatal().Err(err).Str("Path", reportXLSX).Msg("could not write workbook")
			}
			log.Info().Str("Path", reportXLSX).Msg("wrote Excel workbook")
		}
	},
}
