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

// Package decompose reconstructs a simplified income statement breakdown
// from one reporting period. The arithmetic is deliberately a
// reconstruction: gross profit, operating profit and net income are
// derived from their components rather than read from the statement, so
// the identities hold exactly even when the source data is inconsistent.
package decompose

import (
	"math"

	"github.com/fundflow/ff-api/data"
)

// DecomposedPeriod is the fixed set of derived quantities for one period.
// Fields the statement does not report are zero, never an error;
// not every company reports every line item every period.
type DecomposedPeriod struct {
	Revenue         float64 `json:"revenue"`
	COGS            float64 `json:"cogs"`
	GrossProfit     float64 `json:"grossProfit"`
	OpExTotal       float64 `json:"opexTotal"`
	RnD             float64 `json:"rnd"`
	SGA             float64 `json:"sga"`
	OtherOpEx       float64 `json:"otherOpex"`
	OperatingProfit float64 `json:"operatingProfit"`
	Taxes           float64 `json:"taxes"`
	Interest        float64 `json:"interest"`
	NetIncome       float64 `json:"netIncome"`
}

// Scenario carries the what-if multipliers. The multipliers scale only
// revenue and cost of revenue; opex, taxes, and interest stay at their
// reported values. That asymmetry models a revenue/COGS-only sensitivity
// and is intentional.
type Scenario struct {
	RevenueMultiplier float64 `json:"revenueMultiplier"`
	CostMultiplier    float64 `json:"costMultiplier"`
}

// NewScenario returns the neutral scenario (no adjustment).
func NewScenario() Scenario {
	return Scenario{RevenueMultiplier: 1.0, CostMultiplier: 1.0}
}

func (s Scenario) normalized() Scenario {
	// a zero multiplier means the caller left the field unset
	if s.RevenueMultiplier == 0 {
		s.RevenueMultiplier = 1.0
	}
	if s.CostMultiplier == 0 {
		s.CostMultiplier = 1.0
	}
	return s
}

// Decompose derives the breakdown for one period of stmt. A nil or empty
// statement yields nil; callers treat "no data" as a displayable state,
// not a failure. An out-of-range period index falls back to the most
// recent period because period windows can shrink between calls.
func Decompose(stmt *data.Statement, periodIndex int, scenario Scenario) *DecomposedPeriod {
	if stmt.Empty() {
		return nil
	}
	if periodIndex < 0 || periodIndex >= stmt.NumPeriods() {
		periodIndex = 0
	}
	scenario = scenario.normalized()
	period := &stmt.Periods[periodIndex]

	d := &DecomposedPeriod{}
	d.Revenue = period.Lookup(data.Aliases(data.ConceptRevenue)) * scenario.RevenueMultiplier
	d.COGS = period.Lookup(data.Aliases(data.ConceptCOGS)) * scenario.CostMultiplier
	d.GrossProfit = d.Revenue - d.COGS
	d.OpExTotal = period.Lookup(data.Aliases(data.ConceptOpEx))
	d.RnD = period.Lookup(data.Aliases(data.ConceptRnD))
	d.SGA = period.Lookup(data.Aliases(data.ConceptSGA))
	d.OtherOpEx = math.Max(0, d.OpExTotal-d.RnD-d.SGA)
	d.OperatingProfit = d.GrossProfit - d.OpExTotal
	d.Taxes = period.Lookup(data.Aliases(data.ConceptTaxes))
	d.Interest = math.Abs(period.Lookup(data.Aliases(data.ConceptInterest)))
	d.NetIncome = d.OperatingProfit - d.Taxes - d.Interest

	return d
}
