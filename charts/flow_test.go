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

var _ = Describe("Flow graph", func() {
	Describe("the reference decomposition", func() {
		var graph *charts.FlowGraph

		BeforeEach(func() {
			graph = charts.ToFlowGraph(referenceDecomposition())
		})

		It("always carries the ten fixed nodes", func() {
			Expect(graph.Nodes).To(HaveLen(10))
			Expect(graph.Nodes[0].Name).To(Equal("Revenue"))
			Expect(graph.Nodes[0].Label).To(Equal("Revenue $100.0B"))
		})

		It("emits all nine edges when every quantity is positive", func() {
			Expect(graph.Links).To(HaveLen(9))
		})

		It("classes edges by flow direction", func() {
			classes := map[charts.FlowClass]int{}
			for _, link := range graph.Links {
				classes[link.Class]++
			}
			Expect(classes[charts.FlowProfit]).To(Equal(3))
			Expect(classes[charts.FlowCost]).To(Equal(6))
		})

		It("carries positive magnitudes on cost edges", func() {
			for _, link := range graph.Links {
				Expect(link.Value).To(BeNumerically(">", 0))
			}
		})
	})

	When("a quantity is zero", func() {
		It("omits the edge but keeps the node", func() {
			d := referenceDecomposition()
			d.OtherOpEx = 0
			graph := charts.ToFlowGraph(d)

			Expect(graph.Nodes).To(HaveLen(10))
			Expect(graph.Links).To(HaveLen(8))
			for _, link := range graph.Links {
				Expect(graph.Nodes[link.Target].Name).NotTo(Equal("Other OpEx"))
			}
		})
	})

	When("a quantity is negative", func() {
		It("omits the edge", func() {
			d := referenceDecomposition()
			d.NetIncome = -5e9
			graph := charts.ToFlowGraph(d)
			for _, link := range graph.Links {
				Expect(graph.Nodes[link.Target].Name).NotTo(Equal("Net Income"))
			}
		})
	})

	When("there is no decomposition", func() {
		It("returns an empty graph", func() {
			graph := charts.ToFlowGraph(nil)
			Expect(graph.Empty()).To(BeTrue())
			Expect(graph.Links).To(BeEmpty())
		})
	})
})
