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
	"strings"

	"github.com/fundflow/ff-api/charts"
	"github.com/fundflow/ff-api/common"
	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/decompose"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var decomposePeriod int
var decomposeRevenueMult float64
var decomposeCostMult float64

func init() {
	decomposeCmd.Flags().IntVar(&decomposePeriod, "period", 0, "Period index to decompose (0 = most recent)")
	decomposeCmd.Flags().Float64Var(&decomposeRevenueMult, "revenue-mult", 1.0, "What-if revenue multiplier")
	decomposeCmd.Flags().Float64Var(&decomposeCostMult, "cost-mult", 1.0, "What-if cost multiplier")

	rootCmd.AddCommand(decomposeCmd)
}

var decomposeCmd = &cobra.Command{
	Use:   "decompose <ticker>",
	Short: "Print the income statement decomposition for a ticker",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()

		ctx := context.Background()
		ticker := strings.ToUpper(args[0])

		manager := data.GetManagerInstance()
		stmt, err := manager.GetIncomeStatement(ctx, ticker)
		if err != nil {
			log.Fatal().Err(err).Str("Ticker", ticker).Msg("could not fetch income statement")
		}

		scenario := decompose.Scenario{
			RevenueMultiplier: decomposeRevenueMult,
			CostMultiplier:    decomposeCostMult,
		}
		d := decompose.Decompose(stmt, decomposePeriod, scenario)
		if d == nil {
			log.Fatal().Str("Ticker", ticker).Msg("no statement data available")
		}

		label := ""
		if decomposePeriod >= 0 && decomposePeriod < stmt.NumPeriods() {
			label = data.PeriodLabel(stmt.Periods[decomposePeriod].End)
		}
		fmt.Printf("%s %s\n\n", ticker, label)

		for _, bar := range charts.ToBridge(d).Bars {
			marker := " "
			if bar.Kind == charts.BarTotal {
				marker = "="
			}
			fmt.Printf("%s %-18s %s\n", marker, bar.Name, bar.Label)
		}
	},
}
