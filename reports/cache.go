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

package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func cacheDir() string {
	dir := viper.GetString("reports.cache_dir")
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "ffapi-reports")
	}
	return dir
}

func cachePath(ticker string) string {
	safe := strings.ToUpper(strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, ticker))
	return filepath.Join(cacheDir(), fmt.Sprintf("%s.json", safe))
}

// CachedReport returns the stored report for a ticker when one exists and
// is younger than reports.ttl.
func CachedReport(ticker string) (*Report, bool) {
	raw, err := os.ReadFile(cachePath(ticker))
	if err != nil {
		return nil, false
	}

	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		log.Warn().Err(err).Str("Ticker", ticker).Msg("discarding unreadable report cache entry")
		return nil, false
	}

	ttl := viper.GetDuration("reports.ttl")
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	if time.Since(report.GeneratedAt) > ttl {
		return nil, false
	}

	return &report, true
}

// StoreReport persists a generated report to the disk cache. Failures are
// logged and swallowed; caching is best effort.
func StoreReport(report *Report) {
	if err := os.MkdirAll(cacheDir(), 0o755); err != nil {
		log.Warn().Err(err).Msg("could not create report cache dir")
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		log.Warn().Err(err).Msg("could not serialize report")
		return
	}

	if err := os.WriteFile(cachePath(report.Ticker), raw, 0o644); err != nil {
		log.Warn().Err(err).Str("Ticker", report.Ticker).Msg("could not write report cache entry")
	}
}

// PurgeCache removes every cached report older than the TTL and returns
// the number removed.
func PurgeCache() int {
	ttl := viper.GetDuration("reports.ttl")
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	entries, err := os.ReadDir(cacheDir())
	if err != nil {
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(cacheDir(), entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > ttl {
			if err := os.Remove(path); err != nil {
				log.Warn().Err(err).Str("Path", path).Msg("could not remove stale report")
				continue
			}
			removed++
		}
	}

	return removed
}
