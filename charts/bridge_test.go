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
)

var _ = Describe("Bridge", func() {
	Describe("the reference decomposition", func() {
		var bridge *charts.Bridge

		BeforeEach(func() {
			bridge = charts.ToBridge(referenceDecomposition())
		})

		It("carries the fixed ten bars in order", func() {
			Expect(bridge.Bars).To(HaveLen(10))
			names := make([]string, 0, 10)
			for _, bar := range bridge.Bars {
				names = append(names, bar.Name)
			}
			Expect(names).To(Equal([]string{
				"Revenue", "Cost of Revenue", "Gross Profit", "R&D", "SG&A",
				"Other OpEx", "Operating Profit", "Taxes", "Interest", "Net Income",
			}))
		})

		It("negates the cost steps", func() {
			Expect(bridge.Bars[1].Value).To(Equal(-40e9))
			Expect(bridge.Bars[1].Kind).To(Equal(charts.BarRelative))
			Expect(bridge.Bars[1].Label).To(Equal("-$40.0B"))
		})

		It("marks the running totals", func() {
			Expect(bridge.Bars[0].Kind).To(Equal(charts.BarAbsolute))
			Expect(bridge.Bars[2].Kind).To(Equal(charts.BarTotal))
			Expect(bridge.Bars[6].Kind).To(Equal(charts.BarTotal))
			Expect(bridge.Bars[9].Kind).To(Equal(charts.BarTotal))
		})

		It("reconciles the deltas with the final total", func() {
			running := 0.0
			for _, bar := range bridge.Bars {
				switch bar.Kind {
				case charts.BarAbsolute, charts.BarRelative:
					running += bar.Value
				case charts.BarTotal:
					Expect(bar.Value).To(BeNumerically("~", running, 1))
				}
			}
			Expect(bridge.Bars[9].Value).To(Equal(31e9))
		})
	})

	When("there is no decomposition", func() {
		It("returns an empty bridge", func() {
			Expect(charts.ToBridge(nil).Empty()).To(BeTrue())
		})
	})
})
