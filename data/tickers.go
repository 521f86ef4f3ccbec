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
	"bufio"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

var nasdaqDirectoryURL = "http://www.nasdaqtrader.com/dynamic/SymDir/nasdaqlisted.txt"

// spacKeywords flags listings that are typically revenue-less (SPACs,
// shell companies, leveraged ETFs); those make degenerate flow charts.
var spacKeywords = []string{
	"ACQUISITION", "MERGER", "BLANK CHECK", "CAPITAL CORP",
	"HOLDINGS CORP", "SPAC", "ETF", "2X", "1X",
}

// fallbackListings keeps the picker usable when the directory is
// unreachable.
var fallbackListings = []Listing{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corp"},
	{Symbol: "NVDA", Name: "Nvidia Corp"},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
}

func isCleanListing(name string) bool {
	upper := strings.ToUpper(name)
	for _, kw := range spacKeywords {
		if strings.Contains(upper, kw) {
			return false
		}
	}
	return true
}

var (
	universe       []Listing
	universeLocker sync.RWMutex
)

// Listings returns the filtered, sorted ticker universe, downloading the
// NASDAQ symbol directory on first use. Directory failures degrade to a
// small static list rather than an error; an empty universe is worse than
// a stale one.
func Listings(ctx context.Context) []Listing {
	universeLocker.RLock()
	cached := universe
	universeLocker.RUnlock()
	if cached != nil {
		return cached
	}
	return RefreshListings(ctx)
}

// RefreshListings re-downloads the symbol directory and replaces the
// cached universe. A failed refresh keeps the previous universe in place.
func RefreshListings(ctx context.Context) []Listing {
	listings, err := fetchNasdaqDirectory(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch NASDAQ ticker directory; using fallback list")
		return staleOrFallback()
	}
	if len(listings) == 0 {
		log.Warn().Msg("NASDAQ ticker directory was empty; using fallback list")
		return staleOrFallback()
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Symbol < listings[j].Symbol
	})

	universeLocker.Lock()
	universe = listings
	universeLocker.Unlock()
	return listings
}

func staleOrFallback() []Listing {
	universeLocker.RLock()
	defer universeLocker.RUnlock()
	if universe != nil {
		return universe
	}
	return fallbackListings
}

func fetchNasdaqDirectory(ctx context.Context) ([]Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nasdaqDirectoryURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP request returned invalid status code: %d", resp.StatusCode)
	}

	listings := make([]Listing, 0, 4096)
	scanner := bufio.NewScanner(resp.Body)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			// header row
			first = false
			continue
		}
		if strings.HasPrefix(line, "File Creation Time") {
			// trailing metadata row
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < 2 {
			continue
		}

		symbol := strings.TrimSpace(fields[0])
		name := strings.TrimSpace(fields[1])
		if symbol == "" || name == "" || !isCleanListing(name) {
			continue
		}

		listings = append(listings, Listing{Symbol: symbol, Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}
