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

package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/fundflow/ff-api/common"
	"github.com/fundflow/ff-api/decompose"
)

// RenderPDF lays out the research note with the decomposition table as a
// one-page-or-more A4 document.
func RenderPDF(report *Report, d *decompose.DecomposedPeriod) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s Research Note", report.Ticker), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, fmt.Sprintf("%s Research Note", report.Ticker), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s by %s", report.GeneratedAt.Format("2006-01-02 15:04 MST"), report.Model), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	if d != nil {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Income Statement Breakdown", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)

		rows := []struct {
			name  string
			value float64
		}{
			{"Revenue", d.Revenue},
			{"Cost of Revenue", d.COGS},
			{"Gross Profit", d.GrossProfit},
			{"Operating Expenses", d.OpExTotal},
			{"Operating Profit", d.OperatingProfit},
			{"Taxes", d.Taxes},
			{"Interest", d.Interest},
			{"Net Income", d.NetIncome},
		}
		for _, row := range rows {
			pdf.CellFormat(90, 7, row.name, "B", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, common.FormatCompact(row.value), "B", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, paragraph := range strings.Split(report.Text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		pdf.MultiCell(0, 5, paragraph, "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
