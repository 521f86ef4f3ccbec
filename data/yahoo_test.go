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

package data_test

import (
	"context"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundflow/ff-api/data"
)

var _ = Describe("Yahoo provider", func() {
	var provider data.MarketDataProvider

	BeforeEach(func() {
		httpmock.Activate()
		provider = data.NewYahoo()
	})

	AfterEach(func() {
		httpmock.DeactivateAndReset()
	})

	Describe("quotes", func() {
		When("the chart endpoint returns a result", func() {
			BeforeEach(func() {
				httpmock.RegisterResponder("GET",
					"https://query1.finance.yahoo.com/v8/finance/chart/AAPL?range=1d&interval=1d",
					httpmock.NewStringResponder(200, `{
						"chart": {"result": [{"meta": {
							"symbol": "AAPL",
							"currency": "USD",
							"regularMarketPrice": 229.87,
							"chartPreviousClose": 228.03,
							"regularMarketTime": 1726257600
						}}]}
					}`))
			})

			It("returns the latest price", func() {
				quote, err := provider.Quote(context.Background(), "AAPL")
				Expect(err).NotTo(HaveOccurred())
				Expect(quote.Ticker).To(Equal("AAPL"))
				Expect(quote.Price).To(Equal(229.87))
				Expect(quote.PreviousClose).To(Equal(228.03))
				Expect(quote.Currency).To(Equal("USD"))
			})
		})

		When("the result array is empty", func() {
			BeforeEach(func() {
				httpmock.RegisterResponder("GET",
					"https://query1.finance.yahoo.com/v8/finance/chart/AAPL?range=1d&interval=1d",
					httpmock.NewStringResponder(200, `{"chart": {"result": []}}`))
			})

			It("returns ErrNoQuote", func() {
				_, err := provider.Quote(context.Background(), "AAPL")
				Expect(err).To(MatchError(data.ErrNoQuote))
			})
		})
	})

	Describe("news", func() {
		BeforeEach(func() {
			httpmock.RegisterResponder("GET",
				"https://query1.finance.yahoo.com/v1/finance/search?q=AAPL&newsCount=2",
				httpmock.NewStringResponder(200, `{
					"news": [
						{"title": "Apple unveils new chip", "publisher": "Wire", "link": "https://example.com/a", "providerPublishTime": 1726257600,
						 "thumbnail": {"resolutions": [{"url": "https://example.com/a.png"}]}},
						{"title": "", "publisher": "Wire", "link": "https://example.com/skip", "providerPublishTime": 1726257601},
						{"title": "Analysts weigh in", "publisher": "Desk", "link": "https://example.com/b", "providerPublishTime": 1726257602},
						{"title": "One too many", "publisher": "Desk", "link": "https://example.com/c", "providerPublishTime": 1726257603}
					]
				}`))
		})

		It("skips incomplete items and respects the cap", func() {
			items, err := provider.News(context.Background(), "AAPL", 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(2))
			Expect(items[0].Title).To(Equal("Apple unveils new chip"))
			Expect(items[0].Thumbnail).To(Equal("https://example.com/a.png"))
			Expect(items[1].Title).To(Equal("Analysts weigh in"))
		})
	})
})
