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

// Package charts projects a decomposed period into renderer-ready chart
// models: a Sankey-style flow graph, a waterfall bridge, and a trend line
// chart. Every projection is a pure function of its input and is never
// persisted.
package charts

import (
	"fmt"

	"github.com/fundflow/ff-api/common"
	"github.com/fundflow/ff-api/decompose"
)

// FlowClass tags an edge as carrying profit or cost.
type FlowClass string

const (
	FlowProfit  FlowClass = "profit"
	FlowCost    FlowClass = "cost"
	FlowNeutral FlowClass = "neutral"
)

const (
	colorBlue   = "#4285F4"
	colorGreen  = "#34A853"
	colorRed    = "#EA4335"
	colorYellow = "#FBBC05"

	linkGreen  = "rgba(52, 168, 83, 0.4)"
	linkRed    = "rgba(234, 67, 53, 0.4)"
	linkYellow = "rgba(251, 188, 5, 0.4)"
)

// Node is one box in the flow graph. Nodes are always present even at
// zero value; only edges are omitted.
type Node struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Link is one directed edge. Source and Target index into Nodes.
type Link struct {
	Source int       `json:"source"`
	Target int       `json:"target"`
	Value  float64   `json:"value"`
	Class  FlowClass `json:"class"`
	Color  string    `json:"color"`
}

// FlowGraph is the Sankey projection of a decomposed period.
type FlowGraph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Empty reports whether there is nothing to draw.
func (f *FlowGraph) Empty() bool {
	return f == nil || len(f.Nodes) == 0
}

// node indices in the fixed flow topology
const (
	nodeRevenue = iota
	nodeGrossProfit
	nodeCOGS
	nodeOperatingProfit
	nodeRnD
	nodeSGA
	nodeOtherOpEx
	nodeNetIncome
	nodeTaxes
	nodeInterest
)

// ToFlowGraph builds the fixed 10-node flow graph. Candidate edges whose
// value is not positive are omitted entirely; zero-width and
// negative-width edges would render as nonsense, and the omission is what
// keeps an all-zero decomposition from producing a degenerate chart.
func ToFlowGraph(d *decompose.DecomposedPeriod) *FlowGraph {
	if d == nil {
		return &FlowGraph{}
	}

	type nodeSpec struct {
		name  string
		value float64
		color string
	}
	specs := [...]nodeSpec{
		nodeRevenue:         {"Revenue", d.Revenue, colorBlue},
		nodeGrossProfit:     {"Gross Profit", d.GrossProfit, colorGreen},
		nodeCOGS:            {"Cost of Revenue", d.COGS, colorRed},
		nodeOperatingProfit: {"Operating Profit", d.OperatingProfit, colorGreen},
		nodeRnD:             {"R&D", d.RnD, colorYellow},
		nodeSGA:             {"SG&A", d.SGA, colorYellow},
		nodeOtherOpEx:       {"Other OpEx", d.OtherOpEx, colorYellow},
		nodeNetIncome:       {"Net Income", d.NetIncome, colorGreen},
		nodeTaxes:           {"Taxes", d.Taxes, colorRed},
		nodeInterest:        {"Interest", d.Interest, colorRed},
	}

	graph := &FlowGraph{Nodes: make([]Node, len(specs))}
	for ii, spec := range specs {
		graph.Nodes[ii] = Node{
			Name:  spec.name,
			Label: fmt.Sprintf("%s %s", spec.name, common.FormatCompact(spec.value)),
			Color: spec.color,
		}
	}

	type edgeSpec struct {
		source int
		target int
		value  float64
		class  FlowClass
	}
	candidates := []edgeSpec{
		{nodeRevenue, nodeGrossProfit, d.GrossProfit, FlowProfit},
		{nodeRevenue, nodeCOGS, d.COGS, FlowCost},
		{nodeGrossProfit, nodeOperatingProfit, d.OperatingProfit, FlowProfit},
		{nodeGrossProfit, nodeRnD, d.RnD, FlowCost},
		{nodeGrossProfit, nodeSGA, d.SGA, FlowCost},
		{nodeGrossProfit, nodeOtherOpEx, d.OtherOpEx, FlowCost},
		{nodeOperatingProfit, nodeNetIncome, d.NetIncome, FlowProfit},
		{nodeOperatingProfit, nodeTaxes, d.Taxes, FlowCost},
		{nodeOperatingProfit, nodeInterest, d.Interest, FlowCost},
	}

	for _, edge := range candidates {
		if edge.value <= 0 {
			continue
		}
		color := linkGreen
		if edge.class == FlowCost {
			color = linkRed
		}
		graph.Links = append(graph.Links, Link{
			Source: edge.source,
			Target: edge.target,
			Value:  edge.value,
			Class:  edge.class,
			Color:  color,
		})
	}

	return graph
}
