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
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/fundflow/ff-api/observability/opentelemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"context"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// quickfs fetches company fundamentals (income statements, profiles) from
// the QuickFS-compatible endpoint configured at construction time.
type quickfs struct {
	apikey string
}

var quickfsAPI = "https://public-api.quickfs.net"

type quickfsStatementResponse struct {
	Ticker  string `json:"ticker"`
	Periods []struct {
		EndDate string `json:"endDate"`
		Items   []struct {
			Name  string   `json:"name"`
			Value *float64 `json:"value"`
		} `json:"items"`
	} `json:"periods"`
}

type quickfsProfileResponse struct {
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

// NewQuickFS creates a new QuickFS fundamentals provider
func NewQuickFS(key string) *quickfs {
	return &quickfs{
		apikey: key,
	}
}

func (q *quickfs) fetch(ctx context.Context, url string, redacted string) ([]byte, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "quickfs.fetch")
	defer span.End()

	span.SetAttributes(attribute.KeyValue{
		Key:   "Url",
		Value: attribute.StringValue(redacted),
	})

	subLog := log.With().Str("Url", redacted).Logger()

	resp, err := http.Get(url)
	if err != nil {
		span.RecordError(err)
		msg := "quickfs http request failed"
		span.SetStatus(codes.Error, msg)
		subLog.Error().Err(err).Msg(msg)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		span.SetAttributes(attribute.KeyValue{
			Key:   "StatusCode",
			Value: attribute.IntValue(resp.StatusCode),
		})
		msg := "quickfs returned invalid response code"
		span.SetStatus(codes.Error, msg)
		subLog.Error().Int("HTTPResponseStatusCode", resp.StatusCode).Msg(msg)
		// 429 stays in the message so the retry policy can recognize it
		return nil, fmt.Errorf("HTTP request returned invalid status code: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		msg := "could not read quickfs body"
		span.SetStatus(codes.Error, msg)
		subLog.Error().Err(err).Msg(msg)
		return nil, err
	}

	return body, nil
}

// IncomeStatement retrieves the income statement table for a ticker.
// Periods are normalized to most-recent-first regardless of the order the
// provider sent them in.
func (q *quickfs) IncomeStatement(ctx context.Context, ticker string) (*Statement, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "quickfs.IncomeStatement")
	defer span.End()

	subLog := log.With().Str("Ticker", ticker).Logger()

	url := fmt.Sprintf("%s/v1/statements/income/%s?token=%s", quickfsAPI, ticker, q.apikey)
	redacted := fmt.Sprintf("%s/v1/statements/income/%s", quickfsAPI, ticker)

	body, err := q.fetch(ctx, url, redacted)
	if err != nil {
		return nil, err
	}

	jsonResp := quickfsStatementResponse{}
	if err := json.Unmarshal(body, &jsonResp); err != nil {
		span.RecordError(err)
		msg := "could not unmarshal statement json"
		span.SetStatus(codes.Error, msg)
		subLog.Error().Err(err).Bytes("Body", body).Msg(msg)
		return nil, fmt.Errorf("%w: %s", ErrMalformedStatement, err)
	}

	stmt := &Statement{
		Ticker:  jsonResp.Ticker,
		Periods: make([]Period, 0, len(jsonResp.Periods)),
	}
	if stmt.Ticker == "" {
		stmt.Ticker = ticker
	}

	for _, p := range jsonResp.Periods {
		end, err := time.Parse("2006-01-02", p.EndDate)
		if err != nil {
			span.RecordError(err)
			msg := "cannot parse period end date"
			span.SetStatus(codes.Error, msg)
			subLog.Error().Err(err).Str("EndDate", p.EndDate).Msg(msg)
			return nil, fmt.Errorf("%w: bad period end date %q", ErrMalformedStatement, p.EndDate)
		}

		period := Period{
			End:   end,
			Items: make([]LineValue, 0, len(p.Items)),
		}
		for _, item := range p.Items {
			if item.Name == "" {
				return nil, fmt.Errorf("%w: unnamed line item", ErrMalformedStatement)
			}
			period.Items = append(period.Items, LineValue{Name: item.Name, Value: item.Value})
		}
		stmt.Periods = append(stmt.Periods, period)
	}

	sort.SliceStable(stmt.Periods, func(i, j int) bool {
		return stmt.Periods[i].End.After(stmt.Periods[j].End)
	})

	return stmt, nil
}

// CompanyProfile retrieves scalar company attributes for display.
func (q *quickfs) CompanyProfile(ctx context.Context, ticker string) (*CompanyInfo, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "quickfs.CompanyProfile")
	defer span.End()

	subLog := log.With().Str("Ticker", ticker).Logger()

	url := fmt.Sprintf("%s/v1/profile/%s?token=%s", quickfsAPI, ticker, q.apikey)
	redacted := fmt.Sprintf("%s/v1/profile/%s", quickfsAPI, ticker)

	body, err := q.fetch(ctx, url, redacted)
	if err != nil {
		return nil, err
	}

	jsonResp := quickfsProfileResponse{}
	if err := json.Unmarshal(body, &jsonResp); err != nil {
		span.RecordError(err)
		msg := "could not unmarshal profile json"
		span.SetStatus(codes.Error, msg)
		subLog.Error().Err(err).Bytes("Body", body).Msg(msg)
		return nil, err
	}

	info := CompanyInfo(jsonResp)
	if info.Ticker == "" {
		info.Ticker = ticker
	}
	return &info, nil
}
