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

// Package reports drafts, caches, and exports equity research reports.
// The text is produced by a hosted LLM from the decomposition and trend
// numbers; generated reports are cached on disk so repeat views within
// the TTL do not re-bill the API.
package reports

import (
	"fmt"
	"strings"

	"github.com/fundflow/ff-api/common"
	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/decompose"
	"github.com/fundflow/ff-api/indicators"
)

const systemPrompt = `You are an equity research analyst. Write a concise, balanced research note based strictly on the figures provided. Structure the note as: business overview, income statement analysis, year-over-year momentum, and risks. Do not invent figures that are not supplied.`

// BuildPrompt assembles the generation prompt from company attributes,
// the decomposed income statement, and the YoY deltas.
func BuildPrompt(info *data.CompanyInfo, d *decompose.DecomposedPeriod, deltas []indicators.YoYDelta) string {
	var b strings.Builder

	if info != nil {
		fmt.Fprintf(&b, "Company: %s (%s)\n", info.Name, info.Ticker)
		if info.Sector != "" {
			fmt.Fprintf(&b, "Sector: %s / %s\n", info.Sector, info.Industry)
		}
		if info.MarketCap > 0 {
			fmt.Fprintf(&b, "Market Cap: %s\n", common.FormatCompact(info.MarketCap))
		}
		if info.TrailingPE > 0 {
			fmt.Fprintf(&b, "Trailing P/E: %.1f\n", info.TrailingPE)
		}
		if info.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", info.Description)
		}
		b.WriteString("\n")
	}

	if d != nil {
		b.WriteString("Most recent period income statement breakdown:\n")
		fmt.Fprintf(&b, "  Revenue: %s\n", common.FormatCompact(d.Revenue))
		fmt.Fprintf(&b, "  Cost of Revenue: %s\n", common.FormatCompact(d.COGS))
		fmt.Fprintf(&b, "  Gross Profit: %s\n", common.FormatCompact(d.GrossProfit))
		fmt.Fprintf(&b, "  Operating Expenses: %s (R&D %s, SG&A %s, Other %s)\n",
			common.FormatCompact(d.OpExTotal), common.FormatCompact(d.RnD),
			common.FormatCompact(d.SGA), common.FormatCompact(d.OtherOpEx))
		fmt.Fprintf(&b, "  Operating Profit: %s\n", common.FormatCompact(d.OperatingProfit))
		fmt.Fprintf(&b, "  Taxes: %s, Interest: %s\n", common.FormatCompact(d.Taxes), common.FormatCompact(d.Interest))
		fmt.Fprintf(&b, "  Net Income: %s\n\n", common.FormatCompact(d.NetIncome))
	}

	if len(deltas) > 0 {
		b.WriteString("Year-over-year change:\n")
		for _, delta := range deltas {
			if delta.Pct != nil {
				fmt.Fprintf(&b, "  %s: %s (%+.1f%%)\n", delta.Label, common.FormatSigned(delta.Current), *delta.Pct)
			} else {
				fmt.Fprintf(&b, "  %s: %s (prior period zero)\n", delta.Label, common.FormatSigned(delta.Current))
			}
		}
	}

	return b.String()
}
