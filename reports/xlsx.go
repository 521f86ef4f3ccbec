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

	"github.com/tealeg/xlsx/v3"

	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/decompose"
	"github.com/fundflow/ff-api/indicators"
)

// RenderXLSX exports the raw statement, the derived breakdown, and the
// key-metric trend as a workbook.
func RenderXLSX(stmt *data.Statement, d *decompose.DecomposedPeriod) ([]byte, error) {
	wb := xlsx.NewFile()

	if !stmt.Empty() {
		sheet, err := wb.AddSheet("Income Statement")
		if err != nil {
			return nil, err
		}

		header := sheet.AddRow()
		header.AddCell().SetString("Line Item")
		for _, label := range stmt.Labels() {
			header.AddCell().SetString(label)
		}

		// preserve the source's line-item order from the most recent period
		for _, item := range stmt.Periods[0].Items {
			row := sheet.AddRow()
			row.AddCell().SetString(item.Name)
			values, ok := stmt.Row(item.Name)
			if !ok {
				continue
			}
			for _, value := range values {
				cell := row.AddCell()
				if value != nil {
					cell.SetFloat(*value)
				}
			}
		}
	}

	if d != nil {
		sheet, err := wb.AddSheet("Breakdown")
		if err != nil {
			return nil, err
		}

		rows := []struct {
			name  string
			value float64
		}{
			{"Revenue", d.Revenue},
			{"Cost of Revenue", d.COGS},
			{"Gross Profit", d.GrossProfit},
			{"Operating Expenses", d.OpExTotal},
			{"R&D", d.RnD},
			{"SG&A", d.SGA},
			{"Other OpEx", d.OtherOpEx},
			{"Operating Profit", d.OperatingProfit},
			{"Taxes", d.Taxes},
			{"Interest", d.Interest},
			{"Net Income", d.NetIncome},
		}
		for _, item := range rows {
			row := sheet.AddRow()
			row.AddCell().SetString(item.name)
			row.AddCell().SetFloat(item.value)
		}
	}

	if trend := indicators.Trend(stmt, nil); !trend.Empty() {
		sheet, err := wb.AddSheet("Trend")
		if err != nil {
			return nil, err
		}

		header := sheet.AddRow()
		header.AddCell().SetString("Metric")
		for _, label := range trend.Labels {
			header.AddCell().SetString(label)
		}

		for _, series := range trend.Series {
			row := sheet.AddRow()
			row.AddCell().SetString(series.Label)
			for _, value := range series.Values {
				row.AddCell().SetFloat(value)
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
