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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fundflow/ff-api/observability/opentelemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// yahoo serves live quotes and headlines; fundamentals come from quickfs.
type yahoo struct{}

var yahooAPI = "https://query1.finance.yahoo.com"

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"chartPreviousClose"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

type yahooSearchResponse struct {
	News []struct {
		Title                string `json:"title"`
		Publisher            string `json:"publisher"`
		Link                 string `json:"link"`
		ProviderPublishTime  int64  `json:"providerPublishTime"`
		Thumbnail            struct {
			Resolutions []struct {
				URL string `json:"url"`
			} `json:"resolutions"`
		} `json:"thumbnail"`
	} `json:"news"`
}

// NewYahoo creates a new Yahoo market data provider
func NewYahoo() *yahoo {
	return &yahoo{}
}

func (y *yahoo) get(ctx context.Context, requestURL string) ([]byte, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.get")
	defer span.End()

	subLog := log.With().Str("Url", requestURL).Logger()

	resp, err := http.Get(requestURL)
	if err != nil {
		span.RecordError(err)
		msg := "yahoo http request failed"
		span.SetStatus(codes.Error, msg)
		subLog.Error().Err(err).Msg(msg)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := "yahoo returned invalid response code"
		span.SetStatus(codes.Error, msg)
		subLog.Error().Int("HTTPResponseStatusCode", resp.StatusCode).Msg(msg)
		return nil, fmt.Errorf("HTTP request returned invalid status code: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		msg := "could not read yahoo body"
		span.SetStatus(codes.Error, msg)
		subLog.Error().Err(err).Msg(msg)
		return nil, err
	}

	return body, nil
}

// Quote returns the latest price observation for a ticker.
func (y *yahoo) Quote(ctx context.Context, ticker string) (*Quote, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.Quote")
	defer span.End()

	requestURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", yahooAPI, url.PathEscape(ticker))
	body, err := y.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	jsonResp := yahooChartResponse{}
	if err := json.Unmarshal(body, &jsonResp); err != nil {
		span.RecordError(err)
		log.Error().Err(err).Str("Ticker", ticker).Msg("could not unmarshal quote json")
		return nil, err
	}

	if len(jsonResp.Chart.Result) == 0 {
		return nil, ErrNoQuote
	}

	meta := jsonResp.Chart.Result[0].Meta
	return &Quote{
		Ticker:        meta.Symbol,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.PreviousClose,
		Currency:      meta.Currency,
		Time:          time.Unix(meta.RegularMarketTime, 0).UTC(),
	}, nil
}

// History returns daily closing prices for a ticker in chronological
// order. Days the venue reports without a close (halts, partial sessions)
// are dropped rather than zero-filled.
func (y *yahoo) History(ctx context.Context, ticker string, days int) ([]float64, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.History")
	defer span.End()

	if days <= 0 {
		days = 180
	}

	requestURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=%dd&interval=1d", yahooAPI, url.PathEscape(ticker), days)
	body, err := y.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	jsonResp := yahooChartResponse{}
	if err := json.Unmarshal(body, &jsonResp); err != nil {
		span.RecordError(err)
		log.Error().Err(err).Str("Ticker", ticker).Msg("could not unmarshal history json")
		return nil, err
	}

	if len(jsonResp.Chart.Result) == 0 || len(jsonResp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoQuote
	}

	raw := jsonResp.Chart.Result[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, c := range raw {
		if c != nil {
			closes = append(closes, *c)
		}
	}

	return closes, nil
}

// News returns up to maxItems recent headlines for a ticker.
func (y *yahoo) News(ctx context.Context, ticker string, maxItems int) ([]NewsItem, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.News")
	defer span.End()

	if maxItems <= 0 {
		maxItems = 10
	}

	requestURL := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=%d", yahooAPI, url.QueryEscape(ticker), maxItems)
	body, err := y.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	jsonResp := yahooSearchResponse{}
	if err := json.Unmarshal(body, &jsonResp); err != nil {
		span.RecordError(err)
		log.Error().Err(err).Str("Ticker", ticker).Msg("could not unmarshal news json")
		return nil, err
	}

	items := make([]NewsItem, 0, len(jsonResp.News))
	for _, n := range jsonResp.News {
		if n.Title == "" || n.Link == "" {
			continue
		}
		item := NewsItem{
			Title:     n.Title,
			Publisher: n.Publisher,
			Link:      n.Link,
			Published: time.Unix(n.ProviderPublishTime, 0).UTC(),
		}
		if len(n.Thumbnail.Resolutions) > 0 {
			item.Thumbnail = n.Thumbnail.Resolutions[0].URL
		}
		items = append(items, item)
		if len(items) == maxItems {
			break
		}
	}

	return items, nil
}
