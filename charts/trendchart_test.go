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

package charts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundflow/ff-api/charts"
	"github.com/fundflow/ff-api/indicators"
)

var _ = Describe("Trend chart", func() {
	It("scales values by the shared divisor", func() {
		trend := &indicators.TrendSeries{
			Labels: []string{"2023-Q3", "2024-Q3"},
			Series: []indicators.MetricSeries{
				{Label: "Revenue", Values: []float64{100e9, 120e9}},
				{Label: "Net Income", Values: []float64{25e9, 30e9}},
			},
			Divisor: 1e9,
			Suffix:  "B",
		}

		chart := charts.ToTrendChart(trend)
		Expect(chart.Empty()).To(BeFalse())
		Expect(chart.AxisTitle).To(Equal("USD (B)"))
		Expect(chart.Lines[0].Values).To(Equal([]float64{100, 120}))
		Expect(chart.Lines[1].Values).To(Equal([]float64{25, 30}))
	})

	It("assigns palette colors in metric order", func() {
		trend := &indicators.TrendSeries{
			Labels: []string{"2024-Q3"},
			Series: []indicators.MetricSeries{
				{Label: "Revenue", Values: []float64{1}},
				{Label: "Gross Profit", Values: []float64{1}},
			},
			Divisor: 1,
		}
		chart := charts.ToTrendChart(trend)
		Expect(chart.Lines[0].Color).NotTo(Equal(chart.Lines[1].Color))
	})

	It("leaves unscaled series alone", func() {
		trend := &indicators.TrendSeries{
			Labels:  []string{"2024-Q3"},
			Series:  []indicators.MetricSeries{{Label: "Revenue", Values: []float64{125000}}},
			Divisor: 1,
		}
		chart := charts.ToTrendChart(trend)
		Expect(chart.AxisTitle).To(Equal("USD"))
		Expect(chart.Lines[0].Values).To(Equal([]float64{125000}))
	})

	When("there is nothing to plot", func() {
		It("returns an empty chart", func() {
			Expect(charts.ToTrendChart(nil).Empty()).To(BeTrue())
			Expect(charts.ToTrendChart(&indicators.TrendSeries{}).Empty()).To(BeTrue())
		})
	})
})
