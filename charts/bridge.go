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
	"github.com/fundflow/ff-api/common"
	"github.com/fundflow/ff-api/decompose"
)

// BarKind is the waterfall measure for one bar: an absolute starting
// point, a signed delta, or a running total.
type BarKind string

const (
	BarAbsolute BarKind = "absolute"
	BarRelative BarKind = "relative"
	BarTotal    BarKind = "total"
)

// Bar is one step of the bridge. Relative cost bars carry negative
// values; the same quantities are positive magnitudes in the flow graph,
// and that sign convention difference between the two projections is
// load-bearing for the renderers.
type Bar struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Kind  BarKind `json:"kind"`
	Label string  `json:"label"`
}

// Bridge is the waterfall projection of a decomposed period.
type Bridge struct {
	Bars []Bar `json:"bars"`
}

// Empty reports whether there is nothing to draw.
func (b *Bridge) Empty() bool {
	return b == nil || len(b.Bars) == 0
}

// ToBridge builds the fixed 10-bar waterfall: revenue as the absolute
// start, costs as negated deltas, and gross profit, operating profit, and
// net income as running totals.
func ToBridge(d *decompose.DecomposedPeriod) *Bridge {
	if d == nil {
		return &Bridge{}
	}

	steps := []struct {
		name  string
		value float64
		kind  BarKind
	}{
		{"Revenue", d.Revenue, BarAbsolute},
		{"Cost of Revenue", -d.COGS, BarRelative},
		{"Gross Profit", d.GrossProfit, BarTotal},
		{"R&D", -d.RnD, BarRelative},
		{"SG&A", -d.SGA, BarRelative},
		{"Other OpEx", -d.OtherOpEx, BarRelative},
		{"Operating Profit", d.OperatingProfit, BarTotal},
		{"Taxes", -d.Taxes, BarRelative},
		{"Interest", -d.Interest, BarRelative},
		{"Net Income", d.NetIncome, BarTotal},
	}

	bridge := &Bridge{Bars: make([]Bar, 0, len(steps))}
	for _, step := range steps {
		bridge.Bars = append(bridge.Bars, Bar{
			Name:  step.name,
			Value: step.value,
			Kind:  step.kind,
			Label: common.FormatSigned(step.value),
		})
	}

	return bridge
}
