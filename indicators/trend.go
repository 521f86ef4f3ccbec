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

// Package indicators derives trend, year-over-year, and technical signal
// data from statements and price history. Unlike the decomposition
// engine, trend and YoY extraction match line-item names exactly with no
// alias tolerance; a metric reported under an alternate spelling silently
// drops out of the output.
package indicators

import (
	"math"

	"github.com/fundflow/ff-api/data"
)

// Metric names a statement line item to plot, with the shorter label the
// charts display.
type Metric struct {
	Line  string `json:"line"`
	Label string `json:"label"`
}

// DefaultMetrics is the fixed set the dashboard charts.
var DefaultMetrics = []Metric{
	{Line: "Total Revenue", Label: "Revenue"},
	{Line: "Gross Profit", Label: "Gross Profit"},
	{Line: "Operating Income", Label: "Operating Income"},
	{Line: "Net Income", Label: "Net Income"},
}

// MetricSeries is one metric's chronological (oldest first) raw values.
// A period missing the line item plots as zero.
type MetricSeries struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// TrendSeries bundles the plotted metrics with one shared magnitude
// divisor; mixing per-series scales on one axis would be unreadable.
type TrendSeries struct {
	Labels  []string       `json:"labels"`
	Series  []MetricSeries `json:"series"`
	Divisor float64        `json:"divisor"`
	Suffix  string         `json:"suffix"`
}

// Empty reports whether there is nothing to plot.
func (t *TrendSeries) Empty() bool {
	return t == nil || len(t.Series) == 0
}

// YoYDelta is one metric's most recent value and its percentage change
// versus the prior period. Pct is nil when the prior value is zero.
type YoYDelta struct {
	Label   string   `json:"label"`
	Current float64  `json:"current"`
	Pct     *float64 `json:"pct"`
}

// Trend extracts chronological series for each metric present in the
// statement. Metrics the statement does not carry are skipped, not
// zero-filled. The shared divisor is picked from the largest magnitude
// across all extracted series: 1e9 and "B" when any value reaches a
// billion, else 1e6 and "M" when any reaches a million, else no scaling.
func Trend(stmt *data.Statement, metrics []Metric) *TrendSeries {
	if stmt.Empty() {
		return &TrendSeries{Divisor: 1}
	}
	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}

	trend := &TrendSeries{Divisor: 1}

	labels := stmt.Labels()
	for ii, jj := 0, len(labels)-1; ii < jj; ii, jj = ii+1, jj-1 {
		labels[ii], labels[jj] = labels[jj], labels[ii]
	}
	trend.Labels = labels

	largest := 0.0
	for _, metric := range metrics {
		row, ok := stmt.Row(metric.Line)
		if !ok {
			continue
		}

		// reverse to chronological order
		values := make([]float64, len(row))
		for ii := range row {
			if row[ii] != nil {
				values[len(row)-1-ii] = *row[ii]
			}
		}

		for _, v := range values {
			if math.Abs(v) > largest {
				largest = math.Abs(v)
			}
		}

		trend.Series = append(trend.Series, MetricSeries{Label: metric.Label, Values: values})
	}

	switch {
	case largest >= 1e9:
		trend.Divisor = 1e9
		trend.Suffix = "B"
	case largest >= 1e6:
		trend.Divisor = 1e6
		trend.Suffix = "M"
	}

	return trend
}

// YoY computes year-over-year deltas between the two most recent periods
// for each metric present in the statement. Fewer than two periods yields
// an empty result.
func YoY(stmt *data.Statement, metrics []Metric) []YoYDelta {
	if stmt.NumPeriods() < 2 {
		return nil
	}
	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}

	deltas := make([]YoYDelta, 0, len(metrics))
	for _, metric := range metrics {
		row, ok := stmt.Row(metric.Line)
		if !ok || row[0] == nil {
			continue
		}

		delta := YoYDelta{Label: metric.Label, Current: *row[0]}
		if row[1] != nil && *row[1] != 0 {
			pct := (*row[0] - *row[1]) / math.Abs(*row[1]) * 100
			delta.Pct = &pct
		}
		deltas = append(deltas, delta)
	}

	return deltas
}
