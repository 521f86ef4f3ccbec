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

package reports_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/indicators"
	"github.com/fundflow/ff-api/reports"
)

type fakeGenerator struct {
	calls atomic.Int64
	text  string
	err   error
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, string, error) {
	g.calls.Add(1)
	if g.err != nil {
		return "", "", g.err
	}
	return g.text, "fake-model", nil
}

type staticFundamentals struct {
	stmt *data.Statement
}

func (s *staticFundamentals) IncomeStatement(_ context.Context, ticker string) (*data.Statement, error) {
	return s.stmt, nil
}

func (s *staticFundamentals) CompanyProfile(_ context.Context, ticker string) (*data.CompanyInfo, error) {
	return &data.CompanyInfo{Ticker: ticker, Name: "Reference Corp", Sector: "Technology", MarketCap: 2e12}, nil
}

type staticMarket struct{}

func (s *staticMarket) Quote(_ context.Context, ticker string) (*data.Quote, error) {
	return &data.Quote{Ticker: ticker, Price: 100}, nil
}

func (s *staticMarket) History(_ context.Context, ticker string, days int) ([]float64, error) {
	return nil, nil
}

func (s *staticMarket) News(_ context.Context, ticker string, maxItems int) ([]data.NewsItem, error) {
	return nil, nil
}

var reportTickerSeq atomic.Int64

var _ = Describe("Prompt builder", func() {
	It("carries the company, the breakdown, and the momentum", func() {
		pct := 24.0
		prompt := reports.BuildPrompt(
			&data.CompanyInfo{Ticker: "REF", Name: "Reference Corp", Sector: "Technology", Industry: "Software", MarketCap: 2e12},
			referenceDecomposition(),
			[]indicators.YoYDelta{{Label: "Net Income", Current: 31e9, Pct: &pct}},
		)

		Expect(prompt).To(ContainSubstring("Reference Corp (REF)"))
		Expect(prompt).To(ContainSubstring("Market Cap: $2.0T"))
		Expect(prompt).To(ContainSubstring("Revenue: $100.0B"))
		Expect(prompt).To(ContainSubstring("Net Income: $31.0B"))
		Expect(prompt).To(ContainSubstring("(+24.0%)"))
	})

	It("notes a zero prior period instead of a percentage", func() {
		prompt := reports.BuildPrompt(nil, nil,
			[]indicators.YoYDelta{{Label: "Net Income", Current: 31e9}})
		Expect(prompt).To(ContainSubstring("prior period zero"))
		Expect(prompt).NotTo(ContainSubstring("%"))
	})
})

var _ = Describe("Report cache", func() {
	BeforeEach(func() {
		viper.Set("reports.cache_dir", GinkgoT().TempDir())
		viper.Set("reports.ttl", time.Hour)
	})

	It("round-trips a stored report", func() {
		report := &reports.Report{Ticker: "REF", Text: "hold", Model: "fake-model", GeneratedAt: time.Now().UTC()}
		reports.StoreReport(report)

		cached, ok := reports.CachedReport("REF")
		Expect(ok).To(BeTrue())
		Expect(cached.Text).To(Equal("hold"))
	})

	It("misses when the entry is stale", func() {
		report := &reports.Report{Ticker: "REF", Text: "hold", GeneratedAt: time.Now().UTC().Add(-2 * time.Hour)}
		reports.StoreReport(report)

		_, ok := reports.CachedReport("REF")
		Expect(ok).To(BeFalse())
	})

	It("misses for unknown tickers", func() {
		_, ok := reports.CachedReport("NOPE")
		Expect(ok).To(BeFalse())
	})

	It("keeps fresh entries during a purge", func() {
		reports.StoreReport(&reports.Report{Ticker: "REF", Text: "hold", GeneratedAt: time.Now().UTC()})
		Expect(reports.PurgeCache()).To(Equal(0))

		_, ok := reports.CachedReport("REF")
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("Get", func() {
	var (
		generator *fakeGenerator
		manager   *data.Manager
		ticker    string
	)

	BeforeEach(func() {
		viper.Set("reports.cache_dir", GinkgoT().TempDir())
		viper.Set("reports.ttl", time.Hour)

		ticker = fmt.Sprintf("RPT%d", reportTickerSeq.Add(1))
		generator = &fakeGenerator{text: "A balanced research note."}
		manager = data.NewManager(&staticFundamentals{stmt: referenceStatement(ticker)}, &staticMarket{})
	})

	It("generates once and then serves from the cache", func() {
		report, err := reports.Get(context.Background(), manager, generator, ticker, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Text).To(Equal("A balanced research note."))
		Expect(report.Model).To(Equal("fake-model"))

		_, err = reports.Get(context.Background(), manager, generator, ticker, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(generator.calls.Load()).To(Equal(int64(1)))
	})

	It("regenerates when forced", func() {
		_, err := reports.Get(context.Background(), manager, generator, ticker, false)
		Expect(err).NotTo(HaveOccurred())

		_, err = reports.Get(context.Background(), manager, generator, ticker, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(generator.calls.Load()).To(Equal(int64(2)))
	})

	It("propagates generator failures", func() {
		generator.err = fmt.Errorf("quota exceeded")
		_, err := reports.Get(context.Background(), manager, generator, ticker, false)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Exports", func() {
	report := &reports.Report{
		Ticker:      "REF",
		Text:        "Overview paragraph.\n\nRisk paragraph.",
		Model:       "fake-model",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	It("renders a PDF document", func() {
		raw, err := reports.RenderPDF(report, referenceDecomposition())
		Expect(err).NotTo(HaveOccurred())
		Expect(len(raw)).To(BeNumerically(">", 500))
		Expect(string(raw[:5])).To(Equal("%PDF-"))
	})

	It("renders a workbook", func() {
		raw, err := reports.RenderXLSX(referenceStatement("REF"), referenceDecomposition())
		Expect(err).NotTo(HaveOccurred())
		Expect(len(raw)).To(BeNumerically(">", 500))
	})
})
