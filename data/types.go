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

package data

import (
	"fmt"
	"time"
)

// LineValue is a single named cell of a reporting period. Line-item names
// are free text from the data source; a nil value means the company did
// not report the item for the period.
type LineValue struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// Period is one reporting column of a financial statement. Items preserve
// the source ordering.
type Period struct {
	End   time.Time   `json:"end"`
	Items []LineValue `json:"items"`
}

// Statement is an income statement table. Periods[0] is the most recent
// reporting period; ascending index moves further into the past. The
// statement is read-only once constructed.
type Statement struct {
	Ticker  string   `json:"ticker"`
	Periods []Period `json:"periods"`
}

// Empty reports whether there is no data to work with. Callers must treat
// an empty statement as a valid, displayable state rather than a failure.
func (s *Statement) Empty() bool {
	return s == nil || len(s.Periods) == 0
}

// NumPeriods returns the number of reporting periods available.
func (s *Statement) NumPeriods() int {
	if s == nil {
		return 0
	}
	return len(s.Periods)
}

// Row extracts the values for an exact line-item name across all periods,
// most-recent-first. Unlike Lookup there is no alias tolerance here; the
// trend and YoY calculations match names exactly. A period that does not
// carry the item yields a nil entry. ok is false when no period carries
// the item at all.
func (s *Statement) Row(name string) (values []*float64, ok bool) {
	if s.Empty() {
		return nil, false
	}

	values = make([]*float64, len(s.Periods))
	for ii := range s.Periods {
		for jj := range s.Periods[ii].Items {
			if s.Periods[ii].Items[jj].Name == name {
				values[ii] = s.Periods[ii].Items[jj].Value
				ok = true
				break
			}
		}
	}

	if !ok {
		return nil, false
	}
	return values, true
}

// PeriodLabel formats a period ending date as a year/quarter label,
// e.g. "2024-Q3".
func PeriodLabel(end time.Time) string {
	quarter := (int(end.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", end.Year(), quarter)
}

// Labels returns the period labels in statement order (most recent first).
func (s *Statement) Labels() []string {
	if s.Empty() {
		return nil
	}
	labels := make([]string, len(s.Periods))
	for ii := range s.Periods {
		labels[ii] = PeriodLabel(s.Periods[ii].End)
	}
	return labels
}

// CompanyInfo carries scalar company attributes used by peripheral
// display; none of the decomposition math reads from it.
type CompanyInfo struct {
	Ticker            string  `json:"ticker"`
	Name              string  `json:"name"`
	Sector            string  `json:"sector"`
	Industry          string  `json:"industry"`
	MarketCap         float64 `json:"marketCap"`
	SharesOutstanding float64 `json:"sharesOutstanding"`
	TrailingPE        float64 `json:"trailingPE"`
	ProfitMargin      float64 `json:"profitMargin"`
	Description       string  `json:"description"`
}

// Quote is a point-in-time price observation.
type Quote struct {
	Ticker        string    `json:"ticker"`
	Price         float64   `json:"price"`
	PreviousClose float64   `json:"previousClose"`
	Currency      string    `json:"currency"`
	Time          time.Time `json:"time"`
}

// NewsItem is a single headline from the news provider.
type NewsItem struct {
	Title     string    `json:"title"`
	Publisher string    `json:"publisher"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
	Thumbnail string    `json:"thumbnail,omitempty"`
}

// Listing is one entry of the selectable ticker universe.
type Listing struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

func (l Listing) String() string {
	return fmt.Sprintf("%s | %s", l.Symbol, l.Name)
}
