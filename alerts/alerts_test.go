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

package alerts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundflow/ff-api/alerts"
	"github.com/fundflow/ff-api/data"
)

var _ = Describe("CheckTriggered", func() {
	quote := func(price float64, prev float64) *data.Quote {
		return &data.Quote{Ticker: "AAPL", Price: price, PreviousClose: prev}
	}

	Describe("price above", func() {
		alert := &alerts.Alert{Ticker: "AAPL", Condition: alerts.PriceAbove, Threshold: 230}

		It("fires at or over the threshold", func() {
			Expect(alert.CheckTriggered(quote(230, 228))).To(BeTrue())
			Expect(alert.CheckTriggered(quote(231, 228))).To(BeTrue())
		})

		It("stays quiet below it", func() {
			Expect(alert.CheckTriggered(quote(229.99, 228))).To(BeFalse())
		})
	})

	Describe("price below", func() {
		alert := &alerts.Alert{Ticker: "AAPL", Condition: alerts.PriceBelow, Threshold: 200}

		It("fires at or under the threshold", func() {
			Expect(alert.CheckTriggered(quote(200, 210))).To(BeTrue())
			Expect(alert.CheckTriggered(quote(195, 210))).To(BeTrue())
		})

		It("stays quiet above it", func() {
			Expect(alert.CheckTriggered(quote(205, 210))).To(BeFalse())
		})
	})

	Describe("percentage move", func() {
		alert := &alerts.Alert{Ticker: "AAPL", Condition: alerts.PctMove, Threshold: 5}

		It("fires on a move in either direction", func() {
			Expect(alert.CheckTriggered(quote(105, 100))).To(BeTrue())
			Expect(alert.CheckTriggered(quote(95, 100))).To(BeTrue())
		})

		It("stays quiet under the threshold", func() {
			Expect(alert.CheckTriggered(quote(104, 100))).To(BeFalse())
		})

		It("cannot fire without a previous close", func() {
			Expect(alert.CheckTriggered(quote(105, 0))).To(BeFalse())
		})
	})

	It("never fires without a quote", func() {
		alert := &alerts.Alert{Ticker: "AAPL", Condition: alerts.PriceAbove, Threshold: 1}
		Expect(alert.CheckTriggered(nil)).To(BeFalse())
	})

	It("never fires for an unknown condition", func() {
		alert := &alerts.Alert{Ticker: "AAPL", Condition: "sideways", Threshold: 1}
		Expect(alert.CheckTriggered(quote(100, 90))).To(BeFalse())
	})
})

var _ = Describe("Valid", func() {
	It("requires a ticker, a known condition, and a positive threshold", func() {
		Expect((&alerts.Alert{Ticker: "AAPL", Condition: alerts.PriceAbove, Threshold: 10}).Valid()).To(BeTrue())
		Expect((&alerts.Alert{Condition: alerts.PriceAbove, Threshold: 10}).Valid()).To(BeFalse())
		Expect((&alerts.Alert{Ticker: "AAPL", Condition: alerts.PriceAbove}).Valid()).To(BeFalse())
		Expect((&alerts.Alert{Ticker: "AAPL", Condition: "sideways", Threshold: 10}).Valid()).To(BeFalse())
	})
})
