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
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/fundflow/ff-api/common"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Manager is the front door of the data layer: it dispatches to the
// configured providers, wraps each remote call in the throttle retry
// policy, and memoizes statements and quotes with a TTL. The
// decomposition engine downstream is cheap and deliberately not memoized;
// it must re-run per what-if scenario.
type Manager struct {
	fundamentals FundamentalsProvider
	market       MarketDataProvider
	retry        RetryPolicy
}

var (
	managerOnce     sync.Once
	managerInstance *Manager
)

// envelope timestamps cached payloads so TTL checks work on both cache
// tiers; the local LRU has no per-entry expiry of its own.
type envelope struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Payload   json.RawMessage `json:"payload"`
}

// NewManager builds a manager over explicit providers; used directly by
// tests and by GetManagerInstance for production wiring.
func NewManager(fundamentals FundamentalsProvider, market MarketDataProvider) *Manager {
	return &Manager{
		fundamentals: fundamentals,
		market:       market,
		retry:        NewRetryPolicy(),
	}
}

// GetManagerInstance returns the process-wide manager configured from
// viper settings.
func GetManagerInstance() *Manager {
	managerOnce.Do(func() {
		managerInstance = NewManager(
			NewQuickFS(viper.GetString("quickfs.token")),
			NewYahoo(),
		)
	})
	return managerInstance
}

func cacheLookup(key string, ttl time.Duration, out any) bool {
	raw, err := common.CacheGet(key)
	if err != nil || len(raw) == 0 {
		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable cache entry")
		return false
	}
	if time.Since(env.FetchedAt) > ttl {
		return false
	}

	if err := json.Unmarshal(env.Payload, out); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable cache payload")
		return false
	}
	return true
}

func cacheStore(key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Msg("could not serialize cache payload")
		return
	}
	raw, err := json.Marshal(envelope{FetchedAt: time.Now(), Payload: payload})
	if err != nil {
		log.Warn().Err(err).Msg("could not serialize cache envelope")
		return
	}
	if err := common.CacheSet(key, raw); err != nil {
		log.Warn().Err(err).Msg("could not store cache entry")
	}
}

// GetIncomeStatement returns the income statement for a ticker, serving
// from cache when a fresh copy exists.
func (m *Manager) GetIncomeStatement(ctx context.Context, ticker string) (*Statement, error) {
	key := common.CacheKey("statement", ticker)
	ttl := viper.GetDuration("data.statement_ttl")

	cached := &Statement{}
	if cacheLookup(key, ttl, cached) {
		return cached, nil
	}

	var stmt *Statement
	err := m.retry.Do(func() error {
		var err error
		stmt, err = m.fundamentals.IncomeStatement(ctx, ticker)
		return err
	})
	if err != nil {
		return nil, err
	}

	cacheStore(key, stmt)
	return stmt, nil
}

// GetCompanyProfile returns scalar company attributes, cached on the
// statement TTL.
func (m *Manager) GetCompanyProfile(ctx context.Context, ticker string) (*CompanyInfo, error) {
	key := common.CacheKey("profile", ticker)
	ttl := viper.GetDuration("data.statement_ttl")

	cached := &CompanyInfo{}
	if cacheLookup(key, ttl, cached) {
		return cached, nil
	}

	var info *CompanyInfo
	err := m.retry.Do(func() error {
		var err error
		info, err = m.fundamentals.CompanyProfile(ctx, ticker)
		return err
	})
	if err != nil {
		return nil, err
	}

	cacheStore(key, info)
	return info, nil
}

// GetQuote returns the latest price, cached briefly to absorb page
// refresh bursts.
func (m *Manager) GetQuote(ctx context.Context, ticker string) (*Quote, error) {
	key := common.CacheKey("quote", ticker)
	ttl := viper.GetDuration("data.quote_ttl")

	cached := &Quote{}
	if cacheLookup(key, ttl, cached) {
		return cached, nil
	}

	var quote *Quote
	err := m.retry.Do(func() error {
		var err error
		quote, err = m.market.Quote(ctx, ticker)
		return err
	})
	if err != nil {
		return nil, err
	}

	cacheStore(key, quote)
	return quote, nil
}

// GetHistory returns daily closes for the technical indicator pipeline,
// cached on the quote TTL.
func (m *Manager) GetHistory(ctx context.Context, ticker string, days int) ([]float64, error) {
	key := common.CacheKey("history", ticker, strconv.Itoa(days))
	ttl := viper.GetDuration("data.quote_ttl")

	var cached []float64
	if cacheLookup(key, ttl, &cached) {
		return cached, nil
	}

	var closes []float64
	err := m.retry.Do(func() error {
		var err error
		closes, err = m.market.History(ctx, ticker, days)
		return err
	})
	if err != nil {
		return nil, err
	}

	cacheStore(key, closes)
	return closes, nil
}

// GetNews returns recent headlines; headlines are not cached.
func (m *Manager) GetNews(ctx context.Context, ticker string, maxItems int) ([]NewsItem, error) {
	var items []NewsItem
	err := m.retry.Do(func() error {
		var err error
		items, err = m.market.News(ctx, ticker, maxItems)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
