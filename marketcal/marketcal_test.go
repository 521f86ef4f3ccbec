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

package marketcal_test

import (
	"time"

	"github.com/fundflow/ff-api/marketcal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Marketcal", func() {
	var nyc *time.Location

	BeforeEach(func() {
		var err error
		nyc, err = time.LoadLocation("America/New_York")
		Expect(err).To(BeNil())
	})

	Describe("Holidays", func() {
		It("computes the 2026 NYSE calendar", func() {
			holidays := marketcal.Holidays(2026)
			Expect(holidays).To(HaveLen(10))
			Expect(holidays).To(ContainElement(time.Date(2026, time.January, 1, 0, 0, 0, 0, nyc)))
			// MLK day is the third Monday of January
			Expect(holidays).To(ContainElement(time.Date(2026, time.January, 19, 0, 0, 0, 0, nyc)))
			Expect(holidays).To(ContainElement(time.Date(2026, time.April, 3, 0, 0, 0, 0, nyc)))
			Expect(holidays).To(ContainElement(time.Date(2026, time.May, 25, 0, 0, 0, 0, nyc)))
			// July 4 2026 is a Saturday, observed Friday July 3
			Expect(holidays).To(ContainElement(time.Date(2026, time.July, 3, 0, 0, 0, 0, nyc)))
			Expect(holidays).To(ContainElement(time.Date(2026, time.November, 26, 0, 0, 0, 0, nyc)))
			Expect(holidays).To(ContainElement(time.Date(2026, time.December, 25, 0, 0, 0, 0, nyc)))
		})
	})

	Describe("IsMarketDay", func() {
		It("rejects weekends", func() {
			Expect(marketcal.IsMarketDay(time.Date(2026, time.August, 22, 12, 0, 0, 0, nyc))).To(BeFalse())
			Expect(marketcal.IsMarketDay(time.Date(2026, time.August, 23, 12, 0, 0, 0, nyc))).To(BeFalse())
		})

		It("rejects holidays", func() {
			Expect(marketcal.IsMarketDay(time.Date(2026, time.December, 25, 12, 0, 0, 0, nyc))).To(BeFalse())
		})

		It("accepts ordinary weekdays", func() {
			Expect(marketcal.IsMarketDay(time.Date(2026, time.August, 26, 12, 0, 0, 0, nyc))).To(BeTrue())
		})
	})

	Describe("IsMarketOpen", func() {
		It("accepts mid-day on a trading day", func() {
			Expect(marketcal.IsMarketOpen(time.Date(2026, time.August, 26, 12, 30, 0, 0, nyc))).To(BeTrue())
		})

		It("rejects pre-market and after-hours times", func() {
			Expect(marketcal.IsMarketOpen(time.Date(2026, time.August, 26, 9, 15, 0, 0, nyc))).To(BeFalse())
			Expect(marketcal.IsMarketOpen(time.Date(2026, time.August, 26, 16, 1, 0, 0, nyc))).To(BeFalse())
		})

		It("accepts the opening and closing minutes", func() {
			Expect(marketcal.IsMarketOpen(time.Date(2026, time.August, 26, 9, 30, 0, 0, nyc))).To(BeTrue())
			Expect(marketcal.IsMarketOpen(time.Date(2026, time.August, 26, 16, 0, 0, 0, nyc))).To(BeTrue())
		})

		It("converts other timezones to New York time", func() {
			utc := time.Date(2026, time.August, 26, 14, 0, 0, 0, time.UTC) // 10:00 in New York
			Expect(marketcal.IsMarketOpen(utc)).To(BeTrue())
		})
	})
})
