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
	"errors"
	"fmt"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundflow/ff-api/data"
)

type fakeFundamentals struct {
	statementCalls atomic.Int64
	profileCalls   atomic.Int64
	statement      *data.Statement
	err            error
}

func (f *fakeFundamentals) IncomeStatement(_ context.Context, ticker string) (*data.Statement, error) {
	f.statementCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.statement, nil
}

func (f *fakeFundamentals) CompanyProfile(_ context.Context, ticker string) (*data.CompanyInfo, error) {
	f.profileCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &data.CompanyInfo{Ticker: ticker, Name: "Fake Corp"}, nil
}

type fakeMarket struct {
	quoteCalls   atomic.Int64
	historyCalls atomic.Int64
	err          error
}

func (f *fakeMarket) Quote(_ context.Context, ticker string) (*data.Quote, error) {
	f.quoteCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &data.Quote{Ticker: ticker, Price: 100 + float64(f.quoteCalls.Load())}, nil
}

func (f *fakeMarket) History(_ context.Context, ticker string, days int) ([]float64, error) {
	f.historyCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []float64{100, 101, 102}, nil
}

func (f *fakeMarket) News(_ context.Context, ticker string, maxItems int) ([]data.NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []data.NewsItem{{Title: "headline", Link: "https://example.com"}}, nil
}

var tickerSeq atomic.Int64

var _ = Describe("Data manager", func() {
	var (
		fundamentals *fakeFundamentals
		market       *fakeMarket
		manager      *data.Manager
		ticker       string
	)

	BeforeEach(func() {
		// unique ticker per spec keeps the shared cache out of the way
		ticker = fmt.Sprintf("TST%d", tickerSeq.Add(1))
		fundamentals = &fakeFundamentals{
			statement: makeStatement([]data.LineValue{
				{Name: "Total Revenue", Value: val(100e9)},
			}),
		}
		market = &fakeMarket{}
		manager = data.NewManager(fundamentals, market)
	})

	Describe("income statements", func() {
		It("serves repeat requests from cache", func() {
			first, err := manager.GetIncomeStatement(context.Background(), ticker)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.NumPeriods()).To(Equal(1))

			second, err := manager.GetIncomeStatement(context.Background(), ticker)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.NumPeriods()).To(Equal(1))

			Expect(fundamentals.statementCalls.Load()).To(Equal(int64(1)))
		})

		It("propagates provider failures without caching them", func() {
			fundamentals.err = errors.New("malformed payload")
			_, err := manager.GetIncomeStatement(context.Background(), ticker)
			Expect(err).To(HaveOccurred())

			fundamentals.err = nil
			stmt, err := manager.GetIncomeStatement(context.Background(), ticker)
			Expect(err).NotTo(HaveOccurred())
			Expect(stmt.NumPeriods()).To(Equal(1))
		})
	})

	Describe("profiles", func() {
		It("caches on the statement TTL", func() {
			info, err := manager.GetCompanyProfile(context.Background(), ticker)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Name).To(Equal("Fake Corp"))

			_, err = manager.GetCompanyProfile(context.Background(), ticker)
			Expect(err).NotTo(HaveOccurred())
			Expect(fundamentals.profileCalls.Load()).To(Equal(int64(1)))
		})
	})

	Describe("quotes", func() {
		It("serves the cached price inside the TTL window", func() {
			first, err := manager.GetQuote(context.Background(), ticker)
			Expect(err).NotTo(HaveOccurred())

			second, err := manager.GetQuote(context.Background(), ticker)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Price).To(Equal(first.Price))
			Expect(market.quoteCalls.Load()).To(Equal(int64(1)))
		})
	})

	Describe("price history", func() {
		It("caches closes per lookback window", func() {
			first, err := manager.GetHistory(context.Background(), ticker, 180)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(HaveLen(3))

			_, err = manager.GetHistory(context.Background(), ticker, 180)
			Expect(err).NotTo(HaveOccurred())
			Expect(market.historyCalls.Load()).To(Equal(int64(1)))

			_, err = manager.GetHistory(context.Background(), ticker, 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(market.historyCalls.Load()).To(Equal(int64(2)))
		})
	})

	Describe("news", func() {
		It("always reaches the provider", func() {
			items, err := manager.GetNews(context.Background(), ticker, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
		})
	})
})
