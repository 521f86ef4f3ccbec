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

package charts

import (
	"fmt"

	"github.com/fundflow/ff-api/indicators"
)

// TrendLine is one plotted metric, already scaled by the shared divisor.
type TrendLine struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
	Color  string    `json:"color"`
}

// TrendChart is the line-chart projection of a trend series.
type TrendChart struct {
	Labels    []string    `json:"labels"`
	Lines     []TrendLine `json:"lines"`
	AxisTitle string      `json:"axisTitle"`
}

// Empty reports whether there is nothing to draw.
func (t *TrendChart) Empty() bool {
	return t == nil || len(t.Lines) == 0
}

var trendPalette = []string{colorBlue, colorGreen, colorYellow, colorRed}

// ToTrendChart scales each series by the shared divisor and assigns
// palette colors in metric order.
func ToTrendChart(trend *indicators.TrendSeries) *TrendChart {
	if trend.Empty() {
		return &TrendChart{}
	}

	chart := &TrendChart{
		Labels:    trend.Labels,
		AxisTitle: "USD",
	}
	if trend.Suffix != "" {
		chart.AxisTitle = fmt.Sprintf("USD (%s)", trend.Suffix)
	}

	divisor := trend.Divisor
	if divisor == 0 {
		divisor = 1
	}

	for ii, series := range trend.Series {
		scaled := make([]float64, len(series.Values))
		for jj, v := range series.Values {
			scaled[jj] = v / divisor
		}
		chart.Lines = append(chart.Lines, TrendLine{
			Label:  series.Label,
			Values: scaled,
			Color:  trendPalette[ii%len(trendPalette)],
		})
	}

	return chart
}
